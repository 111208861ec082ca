package parser

import "fmt"

// FormatErrorKind categorizes structural decode failures.
type FormatErrorKind string

const (
	// KindMissingHeaderTerminator means end-of-input was reached before
	// the second "---" delimiter. Fatal for the file.
	KindMissingHeaderTerminator FormatErrorKind = "missing_header_terminator"

	// KindInvalidNumericField means a numeric column held non-numeric
	// content. Scoped to a single row.
	KindInvalidNumericField FormatErrorKind = "invalid_numeric_field"
)

// FormatError reports that a stat log deviated from the expected
// hybrid YAML/CSV format.
type FormatError struct {
	Kind FormatErrorKind

	// Field is the column name involved, for row-scoped errors.
	Field string

	// Value is the offending cell content, for row-scoped errors.
	Value string
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case KindMissingHeaderTerminator:
		return "missing metadata header terminator"
	case KindInvalidNumericField:
		return fmt.Sprintf("invalid numeric field %s: %q", e.Field, e.Value)
	default:
		return string(e.Kind)
	}
}

// Is makes errors.Is match on the error kind, so callers can compare
// against the sentinel values below.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

// Sentinel values for errors.Is comparisons.
var (
	ErrMissingHeaderTerminator = &FormatError{Kind: KindMissingHeaderTerminator}
	ErrInvalidNumericField     = &FormatError{Kind: KindInvalidNumericField}
)
