package quic

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/protocol"
	"github.com/QYUbit/rectoverlap/pkg/rlog"
	"github.com/quic-go/quic-go"
)

const (
	closeNormal  quic.ApplicationErrorCode = 0
	closeOnClose quic.ApplicationErrorCode = 1000
)

type streamHandler func(ctx context.Context, ses *session, stream *quic.Stream)

type session struct {
	id      string
	conn    *quic.Conn
	manager *sessionManager

	streams   sync.WaitGroup
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *session) close(code quic.ApplicationErrorCode, reason string) error {
	var err error

	s.closeOnce.Do(func() {
		s.cancel()
		err = s.conn.CloseWithError(code, reason)
		s.manager.removeSession(s.id)
	})

	return err
}

func (s *session) streamLoop(ctx context.Context, handler streamHandler) {
	for {
		stream, err := s.conn.AcceptStream(ctx)
		if err != nil {
			return
		}

		s.streams.Add(1)
		go func() {
			defer s.streams.Done()
			handler(ctx, s, stream)
		}()
	}
}

type sessionManager struct {
	sessions    map[string]*session
	sessionsMu  sync.RWMutex
	handler     streamHandler
	idGenerator func() string
	logger      rlog.Logger
}

func newSessionManager(idGenerator func() string, handler streamHandler, logger rlog.Logger) *sessionManager {
	return &sessionManager{
		sessions:    make(map[string]*session),
		idGenerator: idGenerator,
		handler:     handler,
		logger:      logger,
	}
}

// addSession serves conn until it is closed by either side.
func (m *sessionManager) addSession(ctx context.Context, conn *quic.Conn) {
	ctx, cancel := context.WithCancel(ctx)

	ses := &session{
		id:      m.idGenerator(),
		conn:    conn,
		manager: m,
		cancel:  cancel,
	}

	m.sessionsMu.Lock()
	m.sessions[ses.id] = ses
	m.sessionsMu.Unlock()

	m.logger.Info("session opened", "session", ses.id, "remote", conn.RemoteAddr().String())

	ses.streamLoop(ctx, m.handler)
	ses.close(closeNormal, "disconnected")
	ses.streams.Wait()

	m.logger.Info("session closed", "session", ses.id)
}

func (m *sessionManager) removeSession(id string) {
	m.sessionsMu.Lock()
	delete(m.sessions, id)
	m.sessionsMu.Unlock()
}

func (m *sessionManager) ids() []string {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (m *sessionManager) closeAll() {
	m.sessionsMu.RLock()
	sessions := make([]*session, 0, len(m.sessions))
	for _, ses := range m.sessions {
		sessions = append(sessions, ses)
	}
	m.sessionsMu.RUnlock()

	for _, ses := range sessions {
		if err := ses.close(closeOnClose, "server closed"); err != nil {
			m.logger.Debug("failed closing session", "session", ses.id, "err", err)
		}
	}
}

// serveStream answers requests on stream until the peer finishes writing.
func (s *Server) serveStream(ctx context.Context, ses *session, stream *quic.Stream) {
	defer stream.Close()

	for {
		var req protocol.Request
		if err := s.codec.ReadMessage(&req, stream); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, protocol.ErrBadPayload) {
				s.logger.Debug("failed reading request", "session", ses.id, "err", err)
				return
			}

			s.logger.Warn("rejected request", "session", ses.id, "err", err)
			if werr := s.codec.WriteMessage(stream, protocol.NewResponse("", overlap.Result{}, err)); werr != nil {
				return
			}
			continue
		}

		res, err := s.evaluator.Evaluate(req.Query)
		if err != nil {
			s.logger.Debug("invalid query", "session", ses.id, "request", req.ID, "err", err)
		} else {
			s.logger.Debug("evaluated query", "session", ses.id, "request", req.ID, "verdict", string(res.Verdict))
		}

		if err := s.codec.WriteMessage(stream, protocol.NewResponse(req.ID, res, err)); err != nil {
			s.logger.Debug("failed writing response", "session", ses.id, "err", err)
			return
		}
	}
}
