package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// ErrorKind classifies a conversion failure.
type ErrorKind string

const (
	// KindFileNotFound means the input file does not exist.
	KindFileNotFound ErrorKind = "file_not_found"

	// KindJSONDecode means the input is not valid JSON.
	KindJSONDecode ErrorKind = "json_decode"

	// KindShape means the JSON is not a list of objects.
	KindShape ErrorKind = "shape_validation"

	// KindUnexpected covers every other failure, e.g. a denied write.
	KindUnexpected ErrorKind = "unexpected"
)

// Process exit codes for each error kind. Warnings exit with ExitOK.
const (
	ExitOK           = 0
	ExitUnexpected   = 1
	ExitFileNotFound = 2
	ExitJSONDecode   = 3
	ExitShape        = 4
)

// ConversionError is returned by every step of the conversion that aborts
// the run.
type ConversionError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Path is the file the failure relates to.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	switch e.Kind {
	case KindFileNotFound:
		return fmt.Sprintf("the file '%s' was not found", e.Path)
	case KindJSONDecode:
		return fmt.Sprintf("could not decode JSON from the file '%s', please check its format", e.Path)
	case KindShape:
		if e.Err != nil {
			return fmt.Sprintf("JSON file must contain a list of objects: %v", e.Err)
		}
		return "JSON file must contain a list of objects"
	default:
		if e.Err != nil {
			return fmt.Sprintf("an unexpected error occurred: %v", e.Err)
		}
		return "an unexpected error occurred"
	}
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the error kind.
func (e *ConversionError) ExitCode() int {
	switch e.Kind {
	case KindFileNotFound:
		return ExitFileNotFound
	case KindJSONDecode:
		return ExitJSONDecode
	case KindShape:
		return ExitShape
	default:
		return ExitUnexpected
	}
}

// NewError creates a ConversionError.
func NewError(kind ErrorKind, path string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of the first ConversionError in err's chain, or
// KindUnexpected when there is none.
func KindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnexpected
}

// ExitCodeOf maps an error to a process exit code. A nil error is ExitOK.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.ExitCode()
	}
	return ExitUnexpected
}

// =============================================================================
// WARNINGS
// =============================================================================

// Warning is a non-fatal diagnostic. The run continues after a warning.
type Warning struct {
	// Kind is "date_format" or "empty_document".
	Kind string

	// Record is the 0-based index of the record, or -1 when not applicable.
	Record int

	// Field is the field name, if any.
	Field string

	// Value is the offending value, if any.
	Value string
}

const (
	WarningDateFormat    = "date_format"
	WarningEmptyDocument = "empty_document"
)

// String renders the warning as a human-readable message.
func (w Warning) String() string {
	switch w.Kind {
	case WarningDateFormat:
		return fmt.Sprintf("date '%s' in column '%s' has an invalid format and will not be converted", w.Value, w.Field)
	case WarningEmptyDocument:
		return "JSON file is empty, an empty CSV will be created"
	default:
		return w.Kind
	}
}
