package domain

// Verdict reasons reported in FAIL lines and stored with run results.
const (
	ReasonMatched  = "Matched expected output"
	ReasonMismatch = "Did not match expected output"
	ReasonErrored  = "Errored while running test"
	ReasonUnknown  = "Unknown test error"
)

// Verdict is the outcome of running a single test
type Verdict struct {
	Passed bool   // Whether the observed output matched the reference
	Reason string // Human-readable reason, one of the Reason constants
}

// Pass returns the passing verdict.
func Pass() Verdict {
	return Verdict{Passed: true, Reason: ReasonMatched}
}

// Fail returns a failing verdict with the given reason.
func Fail(reason string) Verdict {
	return Verdict{Passed: false, Reason: reason}
}
