//go:build !unix

package commands

import (
	"fmt"
	"os"
)

// dirAccess only confirms dir exists; permission bits are not meaningful here.
func dirAccess(dir string, _ bool) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
