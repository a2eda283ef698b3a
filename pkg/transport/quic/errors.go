package quic

import "errors"

var (
	ErrAlreadyStarted = errors.New("server has already started")
	ErrServerClosed   = errors.New("server is already closed")
	ErrClientClosed   = errors.New("client is closed")
)
