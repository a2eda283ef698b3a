// Package quic serves overlap queries over QUIC. Every stream carries a
// sequence of protocol.Request frames, each answered by a protocol.Response.
package quic

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/QYUbit/rectoverlap/pkg/geom"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/protocol"
	"github.com/QYUbit/rectoverlap/pkg/rlog"
	"github.com/google/uuid"
	"github.com/quic-go/quic-go"
)

type Option func(*Server)

func WithLogger(logger rlog.Logger) Option {
	return func(s *Server) {
		s.logger = rlog.OrDiscard(logger)
	}
}

func WithEvaluator(e overlap.Evaluator) Option {
	return func(s *Server) {
		s.evaluator = e
	}
}

func WithIDGenerator(idGenerator func() string) Option {
	return func(s *Server) {
		s.idGenerator = idGenerator
	}
}

func WithCodec(codec protocol.Codec) Option {
	return func(s *Server) {
		s.codec = codec
	}
}

type Server struct {
	address string
	quicCfg *quic.Config
	tlsCfg  *tls.Config

	listener    *quic.Listener
	codec       protocol.Codec
	evaluator   overlap.Evaluator
	idGenerator func() string
	logger      rlog.Logger

	sessions *sessionManager

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	running   atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewServer(address string, tlsCfg *tls.Config, quicCfg *quic.Config, opts ...Option) *Server {
	s := &Server{
		address:     address,
		tlsCfg:      tlsCfg,
		quicCfg:     quicCfg,
		codec:       protocol.NewDefaultCodec(),
		evaluator:   overlap.NewEvaluator(geom.Epsilon),
		idGenerator: uuid.NewString,
		logger:      rlog.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sessions = newSessionManager(s.idGenerator, s.serveStream, s.logger)

	return s
}

// Listen binds the address without accepting connections. Start calls it
// when it has not been called yet.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrServerClosed
	}
	if s.listener != nil {
		return nil
	}

	l, err := quic.ListenAddr(s.address, s.tlsCfg, s.quicCfg)
	if err != nil {
		return err
	}
	s.listener = l
	return nil
}

// Start accepts connections until ctx is done or Close is called, and
// returns nil in both cases.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if err := s.Listen(); err != nil {
		if errors.Is(err, ErrServerClosed) {
			return nil
		}
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Info("quic server listening", "addr", s.Addr().String())

	return s.acceptConnections(ctx)
}

func (s *Server) acceptConnections(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept(ctx)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if s.closed.Load() {
				return nil
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.sessions.addSession(ctx, conn)
		}()
	}
}

// Addr is the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Sessions returns the IDs of open connections.
func (s *Server) Sessions() []string {
	return s.sessions.ids()
}

func (s *Server) Close() error {
	var err error

	s.closeOnce.Do(func() {
		s.closed.Store(true)

		s.mu.Lock()
		if s.cancel != nil {
			s.cancel()
		}
		listener := s.listener
		s.mu.Unlock()

		if listener != nil {
			err = listener.Close()
		}
		s.sessions.closeAll()
		s.wg.Wait()

		s.logger.Info("quic server closed")
	})

	return err
}
