package domain

import (
	"path/filepath"
	"strings"
)

// Layout conventions of a circuit test tree. Reference and capture files
// live in fixed sibling directories next to each circuit file.
const (
	CircuitExt      = ".circ"
	ReferenceDir    = "reference-output"
	CaptureDir      = "student-output"
	ReferenceSuffix = "-ref.out"
	PipelinedSuffix = "-pipelined-ref.out"
	CaptureSuffix   = "-student.out"
)

// Test represents a single circuit file to be simulated
type Test struct {
	Path string // Path to the circuit file as discovered
	Name string // Filename without the circuit extension
}

// NewTest builds a Test from a circuit file path.
func NewTest(path string) Test {
	return Test{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), CircuitExt),
	}
}

// ID is the identifier printed in PASS/FAIL lines: the path as given.
func (t Test) ID() string {
	return t.Path
}

// CanPipeline reports whether this test has a pipelined reference variant.
// Single-component circuits (alu, regfile) only have single-cycle output.
func (t Test) CanPipeline() bool {
	parent := filepath.Base(filepath.Dir(t.Path))
	return parent != "alu" && parent != "regfile"
}

// ReferencePath returns the expected-output table for this test. Callers
// decide pipelining eligibility; see CanPipeline.
func (t Test) ReferencePath(pipelined bool) string {
	suffix := ReferenceSuffix
	if pipelined {
		suffix = PipelinedSuffix
	}
	return filepath.Join(filepath.Dir(t.Path), ReferenceDir, t.Name+suffix)
}

// CapturePath returns the file the observed simulator output is written to.
func (t Test) CapturePath() string {
	return filepath.Join(filepath.Dir(t.Path), CaptureDir, t.Name+CaptureSuffix)
}
