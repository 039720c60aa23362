package execution

import (
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"
)

// TestMain doubles as the simulator stand-in: when the test binary is
// re-executed with CTP_SIM_HELPER set it behaves like a headless simulator
// instead of running the suite.
func TestMain(m *testing.M) {
	if os.Getenv("CTP_SIM_HELPER") == "1" {
		simulatorStandIn()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// simulatorStandIn emulates the simulator CLI. The circuit file named by
// the last argument holds the CSV rows to stream to stdout; CTP_SIM_MODE
// selects misbehavior variants.
func simulatorStandIn() {
	circPath := os.Args[len(os.Args)-1]

	switch os.Getenv("CTP_SIM_MODE") {
	case "hang":
		// Produce nothing and wait to be terminated.
		time.Sleep(30 * time.Second)
	case "stubborn":
		// Survive graceful termination; only SIGKILL ends this. The ready
		// line tells the parent the ignore is installed, so a termination
		// request cannot land in the window before it takes effect.
		signal.Ignore(syscall.SIGTERM)
		os.Stdout.WriteString("ready\n")
		time.Sleep(30 * time.Second)
	case "exit-code":
		// Emit the table, then fail loudly on the way out.
		data, err := os.ReadFile(circPath)
		if err != nil {
			os.Exit(3)
		}
		os.Stdout.Write(data)
		os.Exit(7)
	default:
		data, err := os.ReadFile(circPath)
		if err != nil {
			os.Exit(3)
		}
		os.Stdout.Write(data)
	}
}
