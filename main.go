package main

import (
	"os"

	"syscli/cmd"
)

// main is the program entry point.
// It delegates to cmd.Execute(), which loads configuration, sets up the
// diagnostic logger, parses the subcommand and dispatches it, then exits
// with the code it returns.
//
// syscli is a system management CLI with two operations:
//   - release: release a new version
//   - update: update system configuration
//
// What each operation does on a given host is defined by the hooks in the
// configuration file; without hooks both operations succeed without side effects.
//
// Exit codes:
//   - 0: the operation succeeded, or help/version output was requested
//   - 1: a hook failed or the configuration file is invalid
//   - 2: the command line did not select an operation
func main() {
	os.Exit(cmd.Execute())
}
