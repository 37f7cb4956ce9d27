// actlog - Activity Log Normalizer
//
// actlog reads a JSON-lines log of user activity events, classifies each
// event as ADD, REMOVE or ACCESSED, drops duplicates, writes a normalized
// CSV table and prints usage statistics.
package main

import (
	"os"

	"github.com/ccollicutt/actlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
