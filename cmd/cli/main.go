// Package main is the entry point for the portfolio-regret CLI.
package main

import (
	"os"

	"portfolio-regret/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
