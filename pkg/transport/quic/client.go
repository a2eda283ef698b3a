package quic

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync/atomic"

	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/protocol"
	"github.com/google/uuid"
	"github.com/quic-go/quic-go"
)

// Client sends queries to a Server. It is safe for concurrent use; every
// query runs on its own stream.
type Client struct {
	conn   *quic.Conn
	codec  protocol.Codec
	closed atomic.Bool
}

func Dial(ctx context.Context, addr string, tlsCfg *tls.Config, quicCfg *quic.Config) (*Client, error) {
	conn, err := quic.DialAddr(ctx, addr, tlsCfg, quicCfg)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{
		conn:  conn,
		codec: protocol.NewDefaultCodec(),
	}, nil
}

// Query evaluates q remotely. Validation failures come back as
// *protocol.RemoteError wrapping the matching sentinel.
func (c *Client) Query(ctx context.Context, q overlap.Query) (overlap.Result, error) {
	if c.closed.Load() {
		return overlap.Result{}, ErrClientClosed
	}

	stream, err := c.conn.OpenStreamSync(ctx)
	if err != nil {
		return overlap.Result{}, fmt.Errorf("open stream: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		stream.SetDeadline(deadline)
	}

	req := protocol.Request{ID: uuid.NewString(), Query: q}
	if err := c.codec.WriteMessage(stream, req); err != nil {
		stream.CancelWrite(0)
		stream.CancelRead(0)
		return overlap.Result{}, fmt.Errorf("send request: %w", err)
	}
	if err := stream.Close(); err != nil {
		return overlap.Result{}, err
	}

	var resp protocol.Response
	if err := c.codec.ReadMessage(&resp, stream); err != nil {
		return overlap.Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.ID != "" && resp.ID != req.ID {
		return overlap.Result{}, fmt.Errorf("response %s does not match request %s", resp.ID, req.ID)
	}
	return resp.Unpack()
}

func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.conn.CloseWithError(closeNormal, "bye")
}
