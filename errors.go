package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDialect is returned by NewDialect when the terminator, delimiter and quote conflict.
	ErrInvalidDialect = errors.New("tabular: invalid dialect")
	// ErrMalformedRecord is the class of all framing errors reported by the tokenizer.
	ErrMalformedRecord = errors.New("tabular: malformed record")
	// ErrInvalidFieldFormat is returned when a field does not match the grammar of the requested type.
	ErrInvalidFieldFormat = errors.New("tabular: invalid field format")
	// ErrInvalidOperation is returned when the Reader is used out of order.
	ErrInvalidOperation = errors.New("tabular: invalid operation")
	// ErrFieldCount is returned by record codecs when a record has an unexpected number of fields.
	ErrFieldCount = errors.New("tabular: wrong number of fields")

	// ErrBareQuote is returned when a quote appears inside an unquoted field.
	ErrBareQuote = fmt.Errorf("%w: bare quote in non-quoted field", ErrMalformedRecord)
	// ErrUnterminatedQuote is returned when input ends inside a quoted field.
	ErrUnterminatedQuote = fmt.Errorf("%w: unterminated quoted field", ErrMalformedRecord)
	// ErrExtraneousQuote is returned when a closing quote is followed by something other than a delimiter or terminator.
	ErrExtraneousQuote = fmt.Errorf("%w: extraneous data after closing quote", ErrMalformedRecord)
)

// ParseError contains location information for framing errors.
type ParseError struct {
	// Record is the 1-based index of the record being framed.
	Record int64
	// Field is the 1-based index of the field being framed.
	Field int
	// Offset is the byte offset in the input where the error was detected.
	Offset int64
	Err    error
}

// Error formats the parse error with its record, field and offset.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tabular: parse error in record %d, field %d (offset %d): %v", e.Record, e.Field, e.Offset, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Is.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FieldError reports a field whose text does not match the requested type.
// It always unwraps to ErrInvalidFieldFormat.
type FieldError struct {
	// Type names the requested type, e.g. "float64".
	Type string
	// Text is the offending field text, truncated for long values.
	Text  string
	Cause error
}

const maxFieldErrorText = 64

func newFieldError(typ string, text []byte, cause error) *FieldError {
	s := string(text)
	if len(s) > maxFieldErrorText {
		s = s[:maxFieldErrorText] + "..."
	}
	return &FieldError{Type: typ, Text: s, Cause: cause}
}

// Error formats the field error with the rejected text and target type.
func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("tabular: cannot decode %q as %s: %v", e.Text, e.Type, e.Cause)
	}
	return fmt.Sprintf("tabular: cannot decode %q as %s", e.Text, e.Type)
}

// Unwrap reports ErrInvalidFieldFormat together with the cause, if any.
func (e *FieldError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return []error{ErrInvalidFieldFormat}
	}
	return []error{ErrInvalidFieldFormat, e.Cause}
}
