// Package websockets answers overlap queries over websocket connections.
// Each text message is a JSON protocol.Request and gets one JSON
// protocol.Response back.
package websockets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/protocol"
	"github.com/QYUbit/rectoverlap/pkg/rlog"
	"github.com/gorilla/websocket"
)

var ErrBinaryMessage = errors.New("binary messages are not supported")

const writeWait = 5 * time.Second

type Option func(*Handler)

// WithCheckOrigin replaces the same-origin check of the upgrader.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = check
	}
}

// AllowOrigins accepts requests whose Origin header is one of origins, or
// any origin when origins holds "*". Requests without an Origin header are
// not from browsers and are accepted.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimSuffix(o, "/"))] = struct{}{}
	}
	_, all := allowed["*"]

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || all {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}
}

// WithReadLimit caps the size of a request message. Larger messages close
// the connection.
func WithReadLimit(limit int64) Option {
	return func(h *Handler) {
		h.readLimit = limit
	}
}

type Handler struct {
	upgrader  websocket.Upgrader
	evaluator overlap.Evaluator
	logger    rlog.Logger
	readLimit int64

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHandler(e overlap.Evaluator, logger rlog.Logger, opts ...Option) *Handler {
	h := &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		evaluator: e,
		logger:    rlog.OrDiscard(logger),
		readLimit: protocol.MaxFrameSize,
		conns:     make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	conn.SetReadLimit(h.readLimit)

	h.track(conn)
	defer h.untrack(conn)

	h.logger.Info("websocket opened", "remote", conn.RemoteAddr().String())
	h.serve(conn)
	h.logger.Info("websocket closed", "remote", conn.RemoteAddr().String())
}

func (h *Handler) serve(conn *websocket.Conn) {
	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("read failed", "err", err)
			}
			return
		}

		resp := h.respond(msgType, payload)

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			h.logger.Debug("write failed", "err", err)
			return
		}
	}
}

func (h *Handler) respond(msgType int, payload []byte) protocol.Response {
	if msgType != websocket.TextMessage {
		err := fmt.Errorf("%w: %w", protocol.ErrBadPayload, ErrBinaryMessage)
		h.logger.Warn("rejected request", "err", err)
		return protocol.NewResponse("", overlap.Result{}, err)
	}

	var req protocol.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		err = fmt.Errorf("%w: %v", protocol.ErrBadPayload, err)
		h.logger.Warn("rejected request", "err", err)
		return protocol.NewResponse("", overlap.Result{}, err)
	}

	res, err := h.evaluator.Evaluate(req.Query)
	if err != nil {
		h.logger.Debug("invalid query", "request", req.ID, "err", err)
	}
	return protocol.NewResponse(req.ID, res, err)
}

func (h *Handler) track(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Handler) untrack(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// Close sends a close frame to every open connection. Handlers already
// serving return once their peer answers or the read fails.
func (h *Handler) Close() error {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	var lastErr error
	for _, conn := range conns {
		err := conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closed"),
			time.Now().Add(time.Second),
		)
		if err != nil {
			lastErr = err
		}
		if err := conn.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
