// Command redirectctl administers redirect rules: adding rules, checking
// membership, reporting loops, migrating the table and issuing admin tokens.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes
const (
	exitSuccess    = 0
	exitError      = 1
	exitLoopsFound = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errLoopsFound) {
			return exitLoopsFound
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitError
	}
	return exitSuccess
}
