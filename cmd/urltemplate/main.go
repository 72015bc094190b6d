// Package main provides the urltemplate CLI that validates
// URL templates and substitutes {name} placeholders from
// parameter files and NAME=VALUE flags.
package main

import (
	"log/slog"
	"os"
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr, os.Environ())

	if err := cmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
