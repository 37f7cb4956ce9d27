package commands

import (
	"fmt"
	"os"
	"path/filepath"
)

// PreconditionError reports an input or output path that cannot be used.
// It is raised before any record is read.
type PreconditionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Reason, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Reason, e.Path)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// checkReadable requires path to exist and its directory to be readable.
func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &PreconditionError{Path: path, Reason: "can not read", Err: err}
	}
	if info.IsDir() {
		return &PreconditionError{Path: path, Reason: "can not read directory as record file"}
	}
	if err := dirAccess(filepath.Dir(path), false); err != nil {
		return &PreconditionError{Path: path, Reason: "can not read", Err: err}
	}
	return nil
}

// checkWritable requires the directory that will hold path to be writable.
func checkWritable(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return &PreconditionError{Path: path, Reason: "can not write", Err: err}
	}
	if !info.IsDir() {
		return &PreconditionError{Path: path, Reason: "can not write", Err: fmt.Errorf("%s is not a directory", dir)}
	}
	if err := dirAccess(dir, true); err != nil {
		return &PreconditionError{Path: path, Reason: "can not write", Err: err}
	}
	return nil
}
