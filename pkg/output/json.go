package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// JSONFormatter prints the statistics summary as indented JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders report.Summary as JSON. Keys keep report order unless
// SortKeys is set. An indent of 0 still breaks lines, without indentation.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	data, err := marshalSummary(report, f.opts.SortKeys)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", strings.Repeat(" ", f.opts.Indent)); err != nil {
		return fmt.Errorf("indenting summary: %w", err)
	}

	_, err = out.WriteTo(w)
	return err
}

func marshalSummary(report *Report, sortKeys bool) ([]byte, error) {
	data, err := encode(report.Summary)
	if err != nil {
		return nil, fmt.Errorf("encoding summary: %w", err)
	}
	if !sortKeys {
		return data, nil
	}

	// Round-trip through a map; encoding/json writes map keys sorted.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic map[string]any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	return encode(generic)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
