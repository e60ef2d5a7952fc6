// Command dirsweep scans a directory tree for reproducible dependency and
// build directories and excludes them from filesystem backups.
package main

import (
	"os"

	"github.com/sweeplabs/dirsweep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
