package comparison

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Result holds the outcome of comparing simulator output against a
// reference table
type Result struct {
	Passed      bool
	Rows        [][]string // Rows observed while the reference still had rows
	MismatchRow int        // 1-based row of the first difference, 0 if none
	Expected    []string   // Reference row at the first difference
	Actual      []string   // Observed row at the first difference, nil if the stream had ended
}

// Compare reads one CSV record at a time from the simulator stream and the
// reference table in lockstep. The reference defines the comparison horizon:
// rows the simulator emits beyond it are never inspected, and the record
// read in the terminating iteration is discarded. A simulator stream that
// ends before the reference is a mismatch and stops accumulation. Differing
// rows mark the result failed but draining continues so the capture holds
// everything the simulator produced within the horizon.
func Compare(ctx context.Context, actual, reference io.Reader) (Result, error) {
	actualCSV := newReader(actual)
	referenceCSV := newReader(reference)

	result := Result{Passed: true}
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		actualRow, err := readRow(actualCSV)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read simulator output: %w", err)
		}
		referenceRow, err := readRow(referenceCSV)
		if err != nil {
			return Result{}, fmt.Errorf("failed to read reference table: %w", err)
		}
		if referenceRow == nil {
			break
		}
		if !slices.Equal(actualRow, referenceRow) {
			result.Passed = false
			if result.MismatchRow == 0 {
				result.MismatchRow = row
				result.Expected = referenceRow
				result.Actual = actualRow
			}
		}
		if actualRow == nil {
			break
		}
		result.Rows = append(result.Rows, actualRow)
	}
	return result, nil
}

// WriteTable writes rows as CSV to w, one record per line.
func WriteTable(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// newReader builds a lenient CSV reader: variable field counts and stray
// quotes are tolerated, matching whatever the simulator emits.
func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// readRow returns the next record, or nil at end of stream.
func readRow(r *csv.Reader) ([]string, error) {
	row, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
