// Package output renders analysis results: the statistics report and the normalized CSV table.
package output

import (
	"time"

	"github.com/ccollicutt/actlog/pkg/analyzer"
)

// Report is the statistics summary plus context about the run.
type Report struct {
	// Summary is the aggregate statistics object.
	Summary analyzer.Stats `json:"summary"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Input is the record file or Redis URL that was analyzed.
	Input string `json:"input"`

	// Output is the path of the CSV table.
	Output string `json:"output"`

	// MalformedRecords counts input lines skipped before analysis.
	MalformedRecords int `json:"malformedRecords"`

	// AnalyzedAt is when the analysis finished.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from analysis results.
func NewReport(result *analyzer.Result, input, output string, malformed int) *Report {
	return &Report{
		Summary: result.Stats,
		Metadata: Metadata{
			Input:            input,
			Output:           output,
			MalformedRecords: malformed,
			AnalyzedAt:       result.Metadata.EndTime,
			Duration:         result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}
}

// HasDrops returns true if any event was excluded from the table.
func (r *Report) HasDrops() bool {
	return r.Summary.HasDrops()
}
