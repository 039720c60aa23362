package domain

import "time"

// TestResult represents the outcome of executing a single circuit test
type TestResult struct {
	Test      Test          // The test that was executed
	Pipelined bool          // Effective pipelining after eligibility check
	Verdict   Verdict       // Pass/fail and reason
	Err       error         // Underlying error for errored tests
	Duration  time.Duration // Time taken to execute

	// First point of divergence, populated for mismatch verdicts.
	MismatchRow int
	ExpectedRow string
	ActualRow   string
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	Pipelined       bool    `json:"pipelined"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete persisted structure for a test run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
