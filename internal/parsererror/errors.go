// Package parsererror defines the failures raised at the ingestion boundary
// and how they are presented to the operator.
package parsererror

import (
	"errors"
	"fmt"
)

// UnsupportedFormatError is returned when a file extension is not one of
// the accepted tabular formats. No parse is attempted.
type UnsupportedFormatError struct {
	FilePath  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported format for '%s': missing file extension", e.FilePath)
	}
	return fmt.Sprintf("unsupported format for '%s': extension '%s' is not one of .csv, .xlsx, .xls",
		e.FilePath, e.Extension)
}

// MalformedInputError wraps a parser-level failure: a CSV row error or a
// spreadsheet that cannot be decoded. Line is 1-based and 0 when unknown.
type MalformedInputError struct {
	FilePath string
	Format   string
	Line     int
	Err      error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s input in '%s' at line %d: %v", e.Format, e.FilePath, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed %s input in '%s': %v", e.Format, e.FilePath, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// EmptyDatasetError is returned when nothing usable is left once blank rows
// are stripped.
type EmptyDatasetError struct {
	FilePath string
	Reason   string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no usable rows in '%s': %s", e.FilePath, e.Reason)
}

// ErrUnresolvedColumnRole signals that no header looks like a customer
// column. The dataset stays usable; customer filtering is disabled.
var ErrUnresolvedColumnRole = errors.New("no customer-bearing column found")

// ErrorKind classifies an ingestion error.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindMalformedInput    ErrorKind = "malformed_input"
	KindEmptyDataset      ErrorKind = "empty_dataset"
	KindUnresolvedColumn  ErrorKind = "unresolved_column_role"
	KindOther             ErrorKind = "other"
)

// Kind returns the category of err, looking through wrapping.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var unsupported *UnsupportedFormatError
	var malformed *MalformedInputError
	var empty *EmptyDatasetError
	switch {
	case errors.As(err, &unsupported):
		return KindUnsupportedFormat
	case errors.As(err, &malformed):
		return KindMalformedInput
	case errors.As(err, &empty):
		return KindEmptyDataset
	case errors.Is(err, ErrUnresolvedColumnRole):
		return KindUnresolvedColumn
	default:
		return KindOther
	}
}

// UserMessage returns the operator-facing text for err. Malformed and empty
// inputs deliberately share one message.
func UserMessage(err error) string {
	switch Kind(err) {
	case KindNone:
		return ""
	case KindUnsupportedFormat:
		return "Please upload a CSV, XLS or XLSX file."
	case KindMalformedInput, KindEmptyDataset:
		return "Error processing file. Please upload it again."
	case KindUnresolvedColumn:
		return "No customer column found. Add a column named like \"Shippers Name\", \"Customer\" or \"Client\"."
	default:
		return "Unexpected error: " + err.Error()
	}
}
