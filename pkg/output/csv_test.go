package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTable(t *testing.T) {
	table := [][]string{
		{"TIMESTAMP", "ACTION", "USER", "FOLDER", "FILENAME", "IP"},
		{"2017-04-30T10:00:00+00:00", "ADD", "a", "/d", "f.txt", "1.2.3.4"},
		{"2017-04-30T11:00:00+00:00", "REMOVE", "b", "/my docs", "q,1.txt", "5.6.7.8"},
		{"2017-04-30T12:00:00+00:00", "ACCESSED", "c", "", `say "hi".txt`, "9.9.9.9"},
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, table); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	want := "TIMESTAMP,ACTION,USER,FOLDER,FILENAME,IP\r\n" +
		"2017-04-30T10:00:00+00:00,ADD,a,/d,f.txt,1.2.3.4\r\n" +
		"2017-04-30T11:00:00+00:00,REMOVE,b,/my docs,\"q,1.txt\",5.6.7.8\r\n" +
		"2017-04-30T12:00:00+00:00,ACCESSED,c,,\"say \"\"hi\"\".txt\",9.9.9.9\r\n"
	if buf.String() != want {
		t.Errorf("WriteTable() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := [][]string{{"A", "B"}, {"1", "2"}}

	if err := WriteTableFile(path, table); err != nil {
		t.Fatalf("WriteTableFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "A,B\r\n1,2\r\n" {
		t.Errorf("file content = %q", data)
	}

	// Existing content is replaced, not appended to.
	if err := WriteTableFile(path, [][]string{{"X"}}); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "X\r\n" {
		t.Errorf("file content after rewrite = %q", data)
	}
}

func TestWriteTableFile_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := WriteTableFile(path, [][]string{{"A"}}); err == nil {
		t.Error("WriteTableFile() expected error for missing directory")
	}
}
