// Package output renders interval analysis results for human and
// machine consumption.
package output

import (
	"math"
	"time"

	"github.com/radlog/radlog/pkg/analyzer"
	"github.com/radlog/radlog/pkg/parser"
)

// Report is the analysis result for one stat log file.
type Report struct {
	// Path is the analyzed file.
	Path string `json:"path"`

	// SampleCount is the number of samples parsed from the file.
	SampleCount int `json:"sample_count"`

	// RowErrors lists rows that failed to decode and were skipped.
	RowErrors []RowIssue `json:"row_errors,omitempty"`

	// Stats holds the read-interval delta statistics in milliseconds.
	Stats Stats `json:"stats"`

	// Metadata is the collector-defined YAML header of the file.
	Metadata parser.Metadata `json:"metadata,omitempty"`
}

// RowIssue describes a skipped data row.
type RowIssue struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Stats mirrors analyzer.IntervalStats with undefined moments (NaN)
// represented as absent values, keeping the type JSON-safe.
type Stats struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Q25    *float64 `json:"q25,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Q75    *float64 `json:"q75,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// NewReport builds a Report from parse and analysis results.
func NewReport(path string, parsed *parser.ParsedLog, rowErrs []*parser.RowError, stats analyzer.IntervalStats) *Report {
	report := &Report{
		Path:        path,
		SampleCount: parsed.Samples.Len(),
		Stats:       newStats(stats),
		Metadata:    parsed.Metadata,
	}
	for _, re := range rowErrs {
		report.RowErrors = append(report.RowErrors, RowIssue{
			Row:     re.Row,
			Message: re.Err.Error(),
		})
	}
	return report
}

func newStats(s analyzer.IntervalStats) Stats {
	return Stats{
		Count:  s.Count,
		Mean:   definedOrNil(s.Mean),
		Std:    definedOrNil(s.Std),
		Min:    definedOrNil(s.Min),
		Q25:    definedOrNil(s.Q25),
		Median: definedOrNil(s.Median),
		Q75:    definedOrNil(s.Q75),
		Max:    definedOrNil(s.Max),
	}
}

func definedOrNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// Batch aggregates the reports of one check run, in discovery order.
type Batch struct {
	// Reports holds per-file results for files that parsed.
	Reports []*Report `json:"reports"`

	// Summary provides aggregate statistics for the run.
	Summary Summary `json:"summary"`

	// AnalyzedAt is when the run completed.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Summary provides aggregate statistics for a check run.
type Summary struct {
	// FilesProcessed counts files that parsed and were analyzed.
	FilesProcessed int `json:"files_processed"`

	// FilesFailed counts files skipped due to structural errors.
	FilesFailed int `json:"files_failed"`

	// TotalSamples is the sample count across all processed files.
	TotalSamples int `json:"total_samples"`

	// TotalRowErrors is the skipped-row count across all files.
	TotalRowErrors int `json:"total_row_errors"`
}

// HasIssues returns true when any file failed or any row was skipped.
func (b *Batch) HasIssues() bool {
	return b.Summary.FilesFailed > 0 || b.Summary.TotalRowErrors > 0
}

// Add appends a per-file report and folds it into the summary.
func (b *Batch) Add(report *Report) {
	b.Reports = append(b.Reports, report)
	b.Summary.FilesProcessed++
	b.Summary.TotalSamples += report.SampleCount
	b.Summary.TotalRowErrors += len(report.RowErrors)
}
