// Package main is the entry point for the ntc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/ntc/cmd/ntc/commands"
	"github.com/thoreinstein/ntc/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil {
		report(err)
	}
	os.Exit(errors.ExitCode(err))
}

// report prints err and its suggestion. An ExitError without a cause only
// carries an exit code; its command has already printed its findings.
func report(err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err == nil {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
