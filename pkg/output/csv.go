package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteTable writes rows as comma-separated records quoted with '"' only
// where needed, one per CRLF-terminated line, in the given order.
func WriteTable(w io.Writer, table [][]string) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	for i, row := range table {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTableFile creates (or truncates) path and writes the table to it.
func WriteTableFile(path string, table [][]string) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("creating table file %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if err := WriteTable(bw, table); err != nil {
		_ = f.Close()
		return fmt.Errorf("table file %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing table file %s: %w", path, err)
	}
	return f.Close()
}
