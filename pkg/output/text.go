package output

import (
	"context"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextFormatter formats the statistics summary as human-readable text.
type TextFormatter struct {
	opts    FormatOptions
	printer *message.Printer
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{
		opts:    opts,
		printer: message.NewPrinter(language.English),
	}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	p := f.printer
	s := report.Summary

	p.Fprintln(w, "=== Activity Log Report ===")
	p.Fprintln(w)
	p.Fprintf(w, "Lines read:      %d\n", s.LineReads)
	p.Fprintf(w, "Events retained: %d\n", s.Actions.Total())
	p.Fprintf(w, "Events dropped:  %d\n", s.DroppedEventsCounts)
	p.Fprintf(w, "  No action mapping: %d\n", s.DroppedEvents.NoActionMapping)
	p.Fprintf(w, "  Duplicates:        %d\n", s.DroppedEvents.Duplicates)
	p.Fprintf(w, "Unique users:    %d\n", s.UniqueUsers)
	p.Fprintf(w, "Unique files:    %d\n", s.UniqueFiles)

	if s.StartDate != nil && s.EndDate != nil {
		p.Fprintf(w, "Date range:      %s .. %s\n", *s.StartDate, *s.EndDate)
	} else {
		p.Fprintln(w, "Date range:      none (no events retained)")
	}

	p.Fprintln(w)
	p.Fprintln(w, "Actions:")
	p.Fprintf(w, "  ADD       %d\n", s.Actions.Add)
	p.Fprintf(w, "  REMOVE    %d\n", s.Actions.Remove)
	p.Fprintf(w, "  ACCESSED  %d\n", s.Actions.Accessed)

	if f.opts.Verbose {
		md := report.Metadata
		p.Fprintln(w, "---")
		p.Fprintf(w, "Input:  %s\n", md.Input)
		p.Fprintf(w, "Output: %s\n", md.Output)
		if md.MalformedRecords > 0 {
			p.Fprintf(w, "Malformed lines skipped: %d\n", md.MalformedRecords)
		}
		p.Fprintf(w, "Duration: %s\n", md.Duration.Round(1e6))
	}

	return nil
}
