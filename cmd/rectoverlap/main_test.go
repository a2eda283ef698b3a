package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/QYUbit/rectoverlap/pkg/config"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/QYUbit/rectoverlap/pkg/transport/quic"
	websockets "github.com/QYUbit/rectoverlap/pkg/transport/websocket"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestOverlapExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"overlapped", strings.Fields("4 4 4 4 0 7 4 4 4 0"), exitOverlapped, "Rectangles are overlapped\n"},
		{"touching", strings.Fields("4 4 4 4 0 8 4 4 4 0"), exitSeparated, "Rectangles separated\n"},
		{"negative first arg", strings.Fields("-4 4 4 4 0 -4 5 4 4 0"), exitOverlapped, "Rectangles are overlapped\n"},
		{"missing arg", strings.Fields("4 4 4 4 0 8 4 4 4"), exitMalformed, "Usage:\n"},
		{"non numeric", strings.Fields("4 four 4 4 0 8 4 4 4 0"), exitMalformed, "Usage:\n"},
		{"no args", nil, exitMalformed, "Usage:\n"},
		{"negative width", strings.Fields("4 4 -4 4 0 8 4 4 4 0"), exitInvalid, "error: "},
		{"nan rotation", strings.Fields("4 4 4 4 NaN 8 4 4 4 0"), exitInvalid, "error: "},
		{"overflowing corners", strings.Fields("1e308 0 1.7e308 1 0 0 0 1 1 0"), exitInvalid, "error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCmd(tt.args...)
			require.Equal(t, tt.code, code)
			require.True(t, strings.HasPrefix(stdout, tt.out), "stdout: %q", stdout)
		})
	}
}

func TestOverlapPrintsVertices(t *testing.T) {
	_, stdout, _ := runCmd(strings.Fields("0 0 2 2 0 5 5 2 2 0")...)
	require.Equal(t, "Rectangles separated\n"+
		"\n"+
		"Rect1:\n"+
		"Rectangle vertices: (-1, -1)   (1, -1)   (1, 1)   (-1, 1)   \n"+
		"Rect2:\n"+
		"Rectangle vertices: (4, 4)   (6, 4)   (6, 6)   (4, 6)   \n", stdout)
}

func TestHelp(t *testing.T) {
	code, stdout, _ := runCmd("help")
	require.Equal(t, exitSeparated, code)
	require.Contains(t, stdout, "rectoverlap x1 y1 w1 h1 r1 x2 y2 w2 h2 r2")
}

func TestHarness(t *testing.T) {
	code, stdout, stderr := runCmd("harness", "-workers", "3")
	require.Equal(t, exitSeparated, code, stderr)
	require.Contains(t, stdout, "PASSED")

	code, stdout, _ = runCmd("harness", "-json")
	require.Equal(t, exitSeparated, code)

	var report struct {
		Passed int
		Failed int
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Zero(t, report.Failed)
	require.Positive(t, report.Passed)
}

func TestHarnessBadFlag(t *testing.T) {
	code, _, stderr := runCmd("harness", "-bogus")
	require.Equal(t, exitMalformed, code)
	require.Contains(t, stderr, "bogus")
}

func TestSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")

	code, _, stderr := runCmd("schema", "-out", path)
	require.Equal(t, exitSeparated, code, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var schemas map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &schemas))
	require.Contains(t, schemas, "query")
	require.Contains(t, schemas, "result")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestQuery(t *testing.T) {
	tlsCfg, err := quic.SelfSignedTLSConfig()
	require.NoError(t, err)

	srv := quic.NewServer("127.0.0.1:0", tlsCfg, nil)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		srv.Close()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	addr := srv.Addr().String()

	code, stdout, stderr := runCmd("query", "-addr", addr, "-insecure", "4", "4", "4", "4", "0", "7", "4", "4", "4", "0")
	require.Equal(t, exitOverlapped, code, stderr)
	require.True(t, strings.HasPrefix(stdout, "Rectangles are overlapped\n"))

	code, stdout, _ = runCmd("query", "-addr", addr, "-insecure", "--", "-4", "4", "-4", "4", "0", "8", "4", "4", "4", "0")
	require.Equal(t, exitInvalid, code)
	require.True(t, strings.HasPrefix(stdout, "error: "))

	code, stdout, _ = runCmd("query", "-addr", addr, "-insecure", "1", "2")
	require.Equal(t, exitMalformed, code)
	require.True(t, strings.HasPrefix(stdout, "Usage:"))
}

func TestWebsocketOrigins(t *testing.T) {
	require.Empty(t, wsOptions(config.Default()))

	cfg := config.Default()
	cfg.WSOrigins = []string{"http://viz.example"}

	h := websockets.NewHandler(overlap.NewEvaluator(cfg.Epsilon), nil, wsOptions(cfg)...)
	srv := httptest.NewServer(h)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://viz.example"}})
	require.NoError(t, err)
	conn.Close()

	_, _, err = websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://other.example"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
}
