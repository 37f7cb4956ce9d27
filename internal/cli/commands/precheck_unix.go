//go:build unix

package commands

import "golang.org/x/sys/unix"

// dirAccess asks the kernel whether the real user may read (or write) dir.
func dirAccess(dir string, write bool) error {
	mode := uint32(unix.R_OK)
	if write {
		mode = unix.W_OK
	}
	return unix.Access(dir, mode)
}
