package output

import (
	"context"
	"io"
)

// Formatter renders per-file reports in a specific format.
type Formatter interface {
	// Format renders one report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds metadata and skipped-row details to the output.
	Verbose bool

	// Quiet reduces each report to a single summary line.
	Quiet bool
}
