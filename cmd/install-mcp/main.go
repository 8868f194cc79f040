// Package main is the entry point for the install-mcp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/supermemoryai/install-mcp/cmd/install-mcp/commands"
	"github.com/supermemoryai/install-mcp/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(errors.ExitCode(err))
}
