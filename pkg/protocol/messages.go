// Package protocol defines the request/response exchange of the overlap
// services and the frame codec they share.
package protocol

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/QYUbit/rectoverlap/pkg/overlap"
)

type Request struct {
	ID    string        `json:"id"`
	Query overlap.Query `json:"query"`
}

type ErrorBody struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Response carries either Result or Error.
type Response struct {
	ID     string          `json:"id"`
	Result *overlap.Result `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// NewResponse builds the reply to request id.
func NewResponse(id string, res overlap.Result, err error) Response {
	if err != nil {
		return Response{
			ID:    id,
			Error: &ErrorBody{Kind: KindOf(err), Message: err.Error()},
		}
	}
	if res.ID == "" {
		res.ID = id
	}
	return Response{ID: id, Result: &res}
}

// Unpack returns the result, or the remote error.
func (r Response) Unpack() (overlap.Result, error) {
	if r.Error != nil {
		return overlap.Result{}, &RemoteError{Kind: r.Error.Kind, Message: r.Error.Message}
	}
	if r.Result == nil {
		return overlap.Result{}, ErrEmptyResponse
	}
	return *r.Result, nil
}

// Codec moves messages over a byte stream.
type Codec interface {
	ReadMessage(dest any, r io.Reader) error
	WriteMessage(w io.Writer, src any) error
}

// DefaultCodec sends JSON documents in length-prefixed frames.
type DefaultCodec struct{}

func NewDefaultCodec() DefaultCodec {
	return DefaultCodec{}
}

func (DefaultCodec) ReadMessage(dest any, r io.Reader) error {
	payload, err := ReadFrame(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

func (DefaultCodec) WriteMessage(w io.Writer, src any) error {
	payload, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return WriteFrame(w, payload)
}
