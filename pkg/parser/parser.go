package parser

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"
)

// FileSource implements RecordSource for a JSON-lines file.
type FileSource struct {
	path string

	file    *os.File
	reader  *bufio.Reader
	done    bool
	lineNum int
	skipped int
}

// NewFileSource creates a RecordSource that reads one JSON object per line from path.
// The file is opened lazily on the first call to Next.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Next returns the next decoded record.
// Blank lines are ignored. Lines that are not a JSON object are logged and skipped.
// Lines have no length limit. Returns io.EOF when the file has been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Record, error) {
	if s.reader == nil {
		if err := s.open(); err != nil {
			return nil, err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.done {
			return nil, io.EOF
		}
		raw, err := s.reader.ReadBytes('\n')
		if err == io.EOF {
			s.done = true
			if len(raw) == 0 {
				return nil, io.EOF
			}
		} else if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.path, err)
		}
		s.lineNum++

		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}

		fields, err := DecodeRecord(line)
		if err != nil {
			s.skipped++
			slog.Warn("skipping line that is not a JSON object",
				"source", s.path, "line", s.lineNum, "content", preview(line), "err", err)
			continue
		}

		return &Record{
			Fields:  fields,
			Source:  s.path,
			LineNum: s.lineNum,
		}, nil
	}
}

// Skipped returns the number of lines dropped because they could not be decoded.
func (s *FileSource) Skipped() int {
	return s.skipped
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *FileSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening record file %s: %w", s.path, err)
	}

	s.file = f
	s.reader = bufio.NewReaderSize(f, 64*1024)
	return nil
}

// DecodeRecord decodes a single JSON object, keeping numbers as json.Number.
// Invalid UTF-8 and anything other than exactly one object is ErrMalformedRecord.
func DecodeRecord(data []byte) (map[string]any, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedRecord)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedRecord)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedRecord)
	}
	return fields, nil
}

// maxPreview bounds how much of a skipped payload is logged.
const maxPreview = 256

func preview(b []byte) string {
	if len(b) <= maxPreview {
		return string(b)
	}
	return string(b[:maxPreview]) + "..."
}
