package output

import (
	"context"
	"io"
)

// Formatter renders the statistics report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Indent is the number of spaces per JSON nesting level.
	Indent int

	// SortKeys orders JSON object keys alphabetically instead of report order.
	SortKeys bool

	// Verbose adds run metadata to text output.
	Verbose bool
}
