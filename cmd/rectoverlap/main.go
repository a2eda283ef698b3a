// Command rectoverlap tests two oriented rectangles for overlap.
//
//	rectoverlap x1 y1 w1 h1 r1 x2 y2 w2 h2 r2
//	rectoverlap harness [-json] [-workers N]
//	rectoverlap serve [-quic-addr A] [-ws-addr A]
//	rectoverlap query [-addr A] [-insecure] -- x1 y1 w1 h1 r1 x2 y2 w2 h2 r2
//	rectoverlap schema [-out path]
//
// Settings come from RECTOVERLAP_* environment variables and ./.env.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/QYUbit/rectoverlap/pkg/config"
	"github.com/QYUbit/rectoverlap/pkg/geom"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/rlog"
	slogadapter "github.com/QYUbit/rectoverlap/pkg/rlog/slog_adapter"
)

const (
	exitSeparated  = 0
	exitOverlapped = 1
	exitMalformed  = 2
	exitInvalid    = 3
	exitFailure    = 4
)

const envFile = ".env"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	if len(args) > 0 {
		switch args[0] {
		case "harness":
			return runHarness(cfg, args[1:], stdout, stderr)
		case "serve":
			return runServe(cfg, args[1:], stderr)
		case "query":
			return runQuery(cfg, args[1:], stdout, stderr)
		case "schema":
			return runSchema(args[1:], stdout, stderr)
		case "help", "-h", "-help", "--help":
			overlap.WriteUsage(stdout)
			return exitSeparated
		}
	}

	return runOverlap(cfg, args, stdout)
}

func runOverlap(cfg config.Config, args []string, stdout io.Writer) int {
	q, err := overlap.ParseArgs(args)
	if err != nil {
		overlap.WriteUsage(stdout)
		return exitMalformed
	}

	e := overlap.Evaluator{Tester: geom.NewTester(cfg.Epsilon)}
	res, err := e.Evaluate(q)
	if err != nil {
		overlap.WriteError(stdout, err)
		return exitCode(err)
	}

	if err := overlap.WriteText(stdout, res); err != nil {
		return exitFailure
	}
	return verdictCode(res)
}

func verdictCode(res overlap.Result) int {
	if res.Overlaps {
		return exitOverlapped
	}
	return exitSeparated
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, overlap.ErrMalformedInput):
		return exitMalformed
	case errors.Is(err, geom.ErrInvalidDimension),
		errors.Is(err, geom.ErrInvalidRotation),
		errors.Is(err, geom.ErrInvalidCenter):
		return exitInvalid
	default:
		return exitFailure
	}
}

func loadConfig() (config.Config, error) {
	path := envFile
	if _, err := os.Stat(path); err != nil {
		path = ""
	}
	return config.Load(path)
}

func newLogger(cfg config.Config, w io.Writer) (rlog.Logger, error) {
	handler, err := slogadapter.NewHandler(w, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return slogadapter.New(slog.New(handler)), nil
}
