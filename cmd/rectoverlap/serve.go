package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/QYUbit/rectoverlap/pkg/config"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/transport/quic"
	websockets "github.com/QYUbit/rectoverlap/pkg/transport/websocket"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func runServe(cfg config.Config, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.QuicAddr, "quic-addr", cfg.QuicAddr, "QUIC listen address")
	fs.StringVar(&cfg.WSAddr, "ws-addr", cfg.WSAddr, "websocket listen address, empty to disable")
	origins := fs.String("ws-origins", strings.Join(cfg.WSOrigins, ","), "comma separated browser origins allowed to connect, * for any")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}
	cfg.WSOrigins = config.SplitList(*origins)

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	tlsCfg, err := serverTLS(cfg)
	if err != nil {
		logger.Error("failed loading tls config", "err", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	evaluator := overlap.NewEvaluator(cfg.Epsilon)

	quicServer := quic.NewServer(cfg.QuicAddr, tlsCfg, nil,
		quic.WithLogger(logger),
		quic.WithEvaluator(evaluator),
	)
	if err := quicServer.Listen(); err != nil {
		logger.Error("failed listening", "addr", cfg.QuicAddr, "err", err)
		return exitFailure
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return quicServer.Start(ctx)
	})

	var wsHandler *websockets.Handler
	var httpServer *http.Server
	if cfg.WSAddr != "" {
		wsHandler = websockets.NewHandler(evaluator, logger, wsOptions(cfg)...)

		mux := http.NewServeMux()
		mux.Handle("/ws", wsHandler)

		httpServer = &http.Server{
			Addr:              cfg.WSAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		ln, err := net.Listen("tcp", cfg.WSAddr)
		if err != nil {
			quicServer.Close()
			logger.Error("failed listening", "addr", cfg.WSAddr, "err", err)
			return exitFailure
		}
		logger.Info("websocket server listening", "addr", ln.Addr().String())

		g.Go(func() error {
			if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if httpServer != nil {
			wsHandler.Close()
			errs = append(errs, httpServer.Shutdown(shutdownCtx))
		}
		errs = append(errs, quicServer.Close())
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "err", err)
		return exitFailure
	}
	return exitSeparated
}

func wsOptions(cfg config.Config) []websockets.Option {
	if len(cfg.WSOrigins) == 0 {
		return nil
	}
	return []websockets.Option{websockets.WithCheckOrigin(websockets.AllowOrigins(cfg.WSOrigins))}
}

func serverTLS(cfg config.Config) (*tls.Config, error) {
	if cfg.TLSCert != "" {
		return quic.LoadTLSConfig(cfg.TLSCert, cfg.TLSKey)
	}

	host, _, err := net.SplitHostPort(cfg.QuicAddr)
	if err != nil || host == "" {
		return quic.SelfSignedTLSConfig()
	}
	return quic.SelfSignedTLSConfig(host, "localhost", "127.0.0.1")
}
