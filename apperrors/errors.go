package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrData        = errors.New("data error")
	ErrEmptyResult = errors.New("empty result")
)

// DataError reports a required column that is missing or a cell that cannot be
// read as its column's type. Row is the 1-based data row, 0 when the problem is
// with the header.
type DataError struct {
	Column string
	Row    int
	Value  string
	Reason string
}

func (e *DataError) Error() string {
	switch {
	case e.Row > 0:
		return fmt.Sprintf("column %q row %d: %s (value %q)", e.Column, e.Row, e.Reason, e.Value)
	case e.Column != "":
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	default:
		return e.Reason
	}
}

func (e *DataError) Is(target error) bool { return target == ErrData }

// MissingColumn builds the DataError for an absent required column.
func MissingColumn(column string) *DataError {
	return &DataError{Column: column, Reason: "required column is missing"}
}

// EmptyResultError is returned by queries that need at least one matching row.
type EmptyResultError struct {
	Query string
	Key   string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: no rows match %q", e.Query, e.Key)
}

func (e *EmptyResultError) Is(target error) bool { return target == ErrEmptyResult }
