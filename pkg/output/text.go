package output

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// TextFormatter renders reports as human-readable statistics tables.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		fmt.Fprintf(w, "%s: %d samples, mean interval %s ms, %d row(s) skipped\n",
			report.Path, report.SampleCount, fmtStat(report.Stats.Mean), len(report.RowErrors))
		return nil
	}

	fmt.Fprintln(w, titleStyle.Render(report.Path))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("", "read deltas (ms)").
		Row("count", strconv.Itoa(report.Stats.Count)).
		Row("mean", fmtStat(report.Stats.Mean)).
		Row("std", fmtStat(report.Stats.Std)).
		Row("min", fmtStat(report.Stats.Min)).
		Row("25%", fmtStat(report.Stats.Q25)).
		Row("50%", fmtStat(report.Stats.Median)).
		Row("75%", fmtStat(report.Stats.Q75)).
		Row("max", fmtStat(report.Stats.Max))

	fmt.Fprintln(w, t.String())

	if len(report.RowErrors) > 0 {
		fmt.Fprintf(w, "%d row(s) skipped\n", len(report.RowErrors))
		if f.opts.Verbose {
			for _, issue := range report.RowErrors {
				fmt.Fprintf(w, "  row %d: %s\n", issue.Row, issue.Message)
			}
		}
	}

	if f.opts.Verbose && len(report.Metadata) > 0 {
		fmt.Fprintln(w, "Metadata:")
		keys := make([]string, 0, len(report.Metadata))
		for k := range report.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %v\n", k, report.Metadata[k])
		}
	}

	fmt.Fprintln(w)
	return nil
}

// fmtStat renders a statistic value, with NaN for undefined moments of
// empty delta arrays.
func fmtStat(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}
