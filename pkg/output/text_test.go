package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Activity Log Report",
		"Lines read:      5",
		"Events retained: 3",
		"Duplicates:        1",
		"2017-04-30T10:00:00+00:00 .. 2017-04-30T11:00:00-05:00",
		"ACCESSED  1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Input:") {
		t.Error("non-verbose output should not include metadata")
	}
}

func TestTextFormatter_Format_ThousandsSeparator(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport()
	report.Summary.LineReads = 1234567

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "1,234,567") {
		t.Errorf("output missing grouped number:\n%s", buf.String())
	}
}

func TestTextFormatter_Format_NoRetainedEvents(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), &Report{}, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "no events retained") {
		t.Errorf("output missing empty range notice:\n%s", buf.String())
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()
	report.Metadata.MalformedRecords = 2

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Input:  events.jsonl", "Output: events.csv", "Malformed lines skipped: 2", "Duration: 1.5s"} {
		if !strings.Contains(output, want) {
			t.Errorf("verbose output missing %q:\n%s", want, output)
		}
	}
}
