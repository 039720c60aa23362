package execution

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func helperCommand(t *testing.T, mode string, args ...string) (string, []string, []string) {
	t.Helper()
	env := append(os.Environ(), "CTP_SIM_HELPER=1")
	if mode != "" {
		env = append(env, "CTP_SIM_MODE="+mode)
	}
	return os.Args[0], args, env
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func waitExited(t *testing.T, p *process, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !p.exited() {
		if time.Now().After(deadline) {
			t.Fatalf("process still running after %v", timeout)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartProcessStreamsStdout(t *testing.T) {
	path := writeTempFile(t, "out.circ", "1,0\n0,1\n")
	bin, args, env := helperCommand(t, "", path)

	p, err := startProcess(bin, args, env)
	if err != nil {
		t.Fatalf("startProcess: %v", err)
	}
	defer p.release()

	data, err := io.ReadAll(p.stdout)
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	if string(data) != "1,0\n0,1\n" {
		t.Errorf("stdout = %q, want %q", data, "1,0\n0,1\n")
	}
	waitExited(t, p, 5*time.Second)
}

func TestStartProcessMissingBinary(t *testing.T) {
	_, err := startProcess(filepath.Join(t.TempDir(), "no-such-simulator"), nil, nil)
	if err == nil {
		t.Fatal("expected an error for a missing binary")
	}
}

func TestTerminateStopsHangingProcess(t *testing.T) {
	path := writeTempFile(t, "hang.circ", "")
	bin, args, env := helperCommand(t, "hang", path)

	p, err := startProcess(bin, args, env)
	if err != nil {
		t.Fatalf("startProcess: %v", err)
	}
	defer p.release()

	p.terminate()
	waitExited(t, p, 5*time.Second)
}

func TestTerminateEscalatesToKill(t *testing.T) {
	path := writeTempFile(t, "stubborn.circ", "")
	bin, args, env := helperCommand(t, "stubborn", path)

	p, err := startProcess(bin, args, env)
	if err != nil {
		t.Fatalf("startProcess: %v", err)
	}
	defer p.release()

	ready := make([]byte, len("ready\n"))
	if _, err := io.ReadFull(p.stdout, ready); err != nil {
		t.Fatalf("read readiness line: %v", err)
	}

	start := time.Now()
	p.terminate()
	if elapsed := time.Since(start); elapsed < 900*time.Millisecond {
		t.Errorf("terminate returned after %v, expected the full grace period", elapsed)
	}
	waitExited(t, p, 5*time.Second)
}

func TestTerminateAfterExitIsNoop(t *testing.T) {
	path := writeTempFile(t, "done.circ", "1\n")
	bin, args, env := helperCommand(t, "", path)

	p, err := startProcess(bin, args, env)
	if err != nil {
		t.Fatalf("startProcess: %v", err)
	}
	defer p.release()

	if _, err := io.ReadAll(p.stdout); err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	waitExited(t, p, 5*time.Second)

	p.terminate()
	p.terminate()
}
