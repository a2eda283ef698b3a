package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/QYUbit/rectoverlap/pkg/config"
	"github.com/QYUbit/rectoverlap/pkg/harness"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
)

func runHarness(cfg config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("harness", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the report as JSON")
	workers := fs.Int("workers", cfg.Workers, "concurrent evaluations")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}

	report, err := harness.Run(context.Background(), overlap.NewEvaluator(cfg.Epsilon), harness.Vectors(), *workers)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	if *asJSON {
		if err := report.WriteJSON(stdout); err != nil {
			return exitFailure
		}
	} else {
		report.WriteTable(stdout)
	}

	if !report.OK() {
		return exitFailure
	}
	return exitSeparated
}
