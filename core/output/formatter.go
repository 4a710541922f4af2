// Package output renders optimization results.
// This package produces human and machine-readable reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"portfolio-regret/core/types"
	"portfolio-regret/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report for a result
	Render(w io.Writer, result *types.Result) error
}

// Options control report verbosity
type Options struct {
	// ShowIdeals includes per-scenario ideal values
	ShowIdeals bool

	// ShowRegrets includes per-scenario regrets
	ShowRegrets bool
}

// For returns the formatter for a format name
func For(name string, opts Options) (Formatter, error) {
	switch Format(name) {
	case FormatCLI:
		return &cliFormatter{opts: opts}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	default:
		return nil, errors.NotFound("output format", name)
	}
}

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) Render(w io.Writer, result *types.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

type cliFormatter struct {
	opts Options
}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) Render(w io.Writer, result *types.Result) error {
	fmt.Fprintf(w, "Status: %s\n", result.Status)
	if result.Message != "" {
		fmt.Fprintf(w, "Detail: %s\n", result.Message)
	}
	if !result.Status.Solved() {
		return nil
	}

	fmt.Fprintf(w, "Minimax regret: %.2f\n", *result.MinMaxRegret)
	fmt.Fprintf(w, "Total cost: %s\n", result.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "Selected initiatives (%d):\n", len(result.Selected))
	for _, id := range result.Selected {
		fmt.Fprintf(w, "  - %s\n", id)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := "scenario\trealized return"
	if f.opts.ShowIdeals {
		header += "\tideal (V*)"
	}
	if f.opts.ShowRegrets {
		header += "\tregret"
	}
	fmt.Fprintln(tw, header)
	for _, s := range types.Scenarios() {
		line := fmt.Sprintf("%s\t%s", s, result.TotalReturns[s].StringFixed(2))
		if f.opts.ShowIdeals {
			line += fmt.Sprintf("\t%.2f", result.Ideals[s])
		}
		if f.opts.ShowRegrets {
			line += fmt.Sprintf("\t%.2f", result.Regrets[s])
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}
