package execution

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// Shutdown bound: after a termination request the process gets
// terminatePolls * terminateInterval to exit before it is killed.
const (
	terminatePolls    = 10
	terminateInterval = 100 * time.Millisecond
)

// process wraps a running simulator. Its stdout is exposed as a stream for
// comparison; stderr passes through to the parent's. A background goroutine
// reaps the child as soon as it exits.
type process struct {
	cmd    *exec.Cmd
	stdout *os.File
	done   chan struct{}

	mu sync.Mutex
}

// startProcess launches bin with the given arguments and environment. The
// write end of the stdout pipe is held only by the child, so the read end
// reaches EOF exactly when the child stops writing.
func startProcess(bin string, args []string, env []string) (*process, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	cmd := exec.Command(bin, args...)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	cmd.Env = env

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("failed to start command: %w", err)
	}
	w.Close()

	p := &process{
		cmd:    cmd,
		stdout: r,
		done:   make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

// exited reports whether the child has been reaped.
func (p *process) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// terminate asks the child to exit and kills it if still alive after the
// polling bound. Safe to call more than once and on an exited process.
func (p *process) terminate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exited() {
		return
	}
	_ = p.cmd.Process.Signal(syscall.SIGTERM)
	for i := 0; i < terminatePolls; i++ {
		if p.exited() {
			return
		}
		time.Sleep(terminateInterval)
	}
	if !p.exited() {
		_ = p.cmd.Process.Kill()
	}
}

// release terminates the child and closes the stdout read end.
func (p *process) release() {
	p.terminate()
	p.stdout.Close()
}
