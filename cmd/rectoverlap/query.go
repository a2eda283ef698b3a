package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/QYUbit/rectoverlap/pkg/config"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/protocol"
	"github.com/QYUbit/rectoverlap/pkg/transport/quic"
)

func runQuery(cfg config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", cfg.QuicAddr, "server address")
	insecure := fs.Bool("insecure", false, "skip certificate verification")
	timeout := fs.Duration("timeout", 5*time.Second, "dial and query timeout")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}

	q, err := overlap.ParseArgs(fs.Args())
	if err != nil {
		overlap.WriteUsage(stdout)
		return exitMalformed
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := quic.Dial(ctx, *addr, quic.ClientTLSConfig(*insecure), nil)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	defer client.Close()

	res, err := client.Query(ctx, q)
	if err != nil {
		var remote *protocol.RemoteError
		if errors.As(err, &remote) {
			overlap.WriteError(stdout, err)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return exitCode(err)
	}

	if err := overlap.WriteText(stdout, res); err != nil {
		return exitFailure
	}
	return verdictCode(res)
}
