package domain

// TestFailure holds the diagnostic detail for a failed test
type TestFailure struct {
	TestName      string `json:"test_name"`
	CircuitPath   string `json:"circuit_path"`
	Reason        string `json:"reason"`
	ReferencePath string `json:"reference_path"`
	CapturePath   string `json:"capture_path,omitempty"`
	MismatchRow   int    `json:"mismatch_row,omitempty"` // 1-based row of first difference
	ExpectedRow   string `json:"expected_row,omitempty"`
	ActualRow     string `json:"actual_row,omitempty"`
	ErrorDetails  string `json:"error_details,omitempty"`
	Resolved      bool   `json:"resolved,omitempty"` // Track if failure is marked as resolved
}
