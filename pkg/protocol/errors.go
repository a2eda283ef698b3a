package protocol

import (
	"errors"
	"fmt"

	"github.com/QYUbit/rectoverlap/pkg/geom"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
)

var (
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	ErrBadPayload    = errors.New("cannot decode payload")
	ErrInternal      = errors.New("internal server error")
	ErrEmptyResponse = errors.New("response carries neither result nor error")
)

// Kind classifies an error on the wire.
type Kind string

const (
	KindInvalidDimension Kind = "invalid_dimension"
	KindInvalidRotation  Kind = "invalid_rotation"
	KindInvalidCenter    Kind = "invalid_center"
	KindMalformedInput   Kind = "malformed_input"
	KindInternal         Kind = "internal"
)

var kindErrors = map[Kind]error{
	KindInvalidDimension: geom.ErrInvalidDimension,
	KindInvalidRotation:  geom.ErrInvalidRotation,
	KindInvalidCenter:    geom.ErrInvalidCenter,
	KindMalformedInput:   overlap.ErrMalformedInput,
	KindInternal:         ErrInternal,
}

// KindOf maps err to its wire kind. Unknown errors are internal.
func KindOf(err error) Kind {
	for kind, sentinel := range kindErrors {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	if errors.Is(err, ErrBadPayload) {
		return KindMalformedInput
	}
	return KindInternal
}

// RemoteError is an error reported by the peer. It unwraps to the sentinel of
// its kind, so errors.Is works on both sides of the connection.
type RemoteError struct {
	Kind    Kind
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s", e.Message)
}

func (e *RemoteError) Unwrap() error {
	if sentinel, ok := kindErrors[e.Kind]; ok {
		return sentinel
	}
	return ErrInternal
}
