package batch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBatch is returned when a file parses but yields no payment rows.
var ErrEmptyBatch = errors.New("batch has no payment rows")

// MissingColumnsError lists required columns absent from the header row,
// in canonical column order.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// RowError ties a field-level validation failure to the 1-indexed file row
// it occurred on. The header counts as row 1, so data rows start at 2.
type RowError struct {
	Row   int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %v", e.Row, e.Field, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// InconsistentDebtorError reports a row whose debtor fields differ from the
// batch header captured on the first row.
type InconsistentDebtorError struct {
	Row int
}

func (e *InconsistentDebtorError) Error() string {
	return fmt.Sprintf("row %d: debtor differs from the rest of the batch", e.Row)
}

// InconsistentExecutionDateError reports a batch whose rows carry more than
// one distinct execution date. Dates are sorted ascending.
type InconsistentExecutionDateError struct {
	Dates []string
}

func (e *InconsistentExecutionDateError) Error() string {
	return fmt.Sprintf("execution date differs across rows: %s", strings.Join(e.Dates, ", "))
}
