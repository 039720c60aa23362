package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"ctp/internal/config"
	"ctp/internal/domain"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	t.Setenv("CTP_SIM_HELPER", "1")

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	cfg := config.New()
	cfg.Simulator = os.Args[0]
	runner := NewRunner(cfg)
	runner.SetDiagnostics(io.Discard)

	output := &bytes.Buffer{}
	session := NewSession(cfg, runner, output)
	session.SetDiagnostics(io.Discard)
	return session, output
}

func TestSessionStreamsVerdictsAndSummary(t *testing.T) {
	session, output := newTestSession(t)
	dir := t.TempDir()

	passing := writeCircuit(t, dir, "adder", "1,0\n")
	writeReference(t, passing, false, "1,0\n")
	failing := writeCircuit(t, dir, "shifter", "0,0\n")
	writeReference(t, failing, false, "1,1\n")

	results, duration, err := session.Execute(context.Background(), []domain.Test{passing, failing})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if duration <= 0 {
		t.Error("duration should be positive")
	}

	lines := strings.Split(strings.TrimRight(output.String(), "\n"), "\n")
	want := []string{
		"PASS: " + passing.ID(),
		"FAIL: " + failing.ID() + " (" + domain.ReasonMismatch + ")",
		"Passed 1/2 tests",
	}
	if len(lines) != len(want) {
		t.Fatalf("output = %q, want %d lines", output.String(), len(want))
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], line)
		}
	}
}

func TestSessionEmptyRunPrintsSummary(t *testing.T) {
	session, output := newTestSession(t)

	results, _, err := session.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want none", len(results))
	}
	if got := output.String(); got != "Passed 0/0 tests\n" {
		t.Errorf("output = %q, want the empty summary", got)
	}
}

func TestSessionErroredTestKeepsRunGoing(t *testing.T) {
	session, output := newTestSession(t)
	dir := t.TempDir()

	orphan := writeCircuit(t, dir, "orphan", "1\n")
	passing := writeCircuit(t, dir, "adder", "1\n")
	writeReference(t, passing, false, "1\n")

	results, _, err := session.Execute(context.Background(), []domain.Test{orphan, passing})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Verdict.Reason != domain.ReasonErrored {
		t.Errorf("first reason = %q, want %q", results[0].Verdict.Reason, domain.ReasonErrored)
	}
	if !strings.Contains(output.String(), "FAIL: "+orphan.ID()+" ("+domain.ReasonErrored+")") {
		t.Errorf("output = %q, want the errored FAIL line", output.String())
	}
	if !strings.Contains(output.String(), "Passed 1/2 tests") {
		t.Errorf("output = %q, want the summary", output.String())
	}
}

func TestSessionInterruptAbortsRun(t *testing.T) {
	session, output := newTestSession(t)
	t.Setenv("CTP_SIM_MODE", "hang")
	dir := t.TempDir()

	first := writeCircuit(t, dir, "slow", "1\n")
	writeReference(t, first, false, "1\n")
	second := writeCircuit(t, dir, "never-run", "1\n")
	writeReference(t, second, false, "1\n")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	results, _, err := session.Execute(ctx, []domain.Test{first, second})
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("err = %v, want ErrInterrupted", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, the in-flight test should be discarded", len(results))
	}
	if output.Len() != 0 {
		t.Errorf("output = %q, want no verdicts and no summary", output.String())
	}
	assertNoCapture(t, first)
	assertNoCapture(t, second)
}

func TestSessionRecoversFromRunnerPanic(t *testing.T) {
	t.Setenv("CTP_SIM_HELPER", "1")

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	cfg := config.New()
	output := &bytes.Buffer{}
	diag := &bytes.Buffer{}
	session := NewSession(cfg, nil, output)
	session.SetDiagnostics(diag)

	test := writeCircuit(t, t.TempDir(), "crasher", "1\n")

	results, _, err := session.Execute(context.Background(), []domain.Test{test})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 1 || results[0].Verdict.Reason != domain.ReasonUnknown {
		t.Fatalf("results = %+v, want a single unknown failure", results)
	}
	if !strings.Contains(output.String(), "FAIL: "+test.ID()+" ("+domain.ReasonUnknown+")") {
		t.Errorf("output = %q, want the unknown FAIL line", output.String())
	}
	if diag.Len() == 0 {
		t.Error("diagnostics should describe the crash")
	}
}
