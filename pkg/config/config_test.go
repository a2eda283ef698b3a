package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupMap(nil))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "localhost:4242", cfg.QuicAddr)
	require.Equal(t, 1e-9, cfg.Epsilon)
}

func TestFromLookup(t *testing.T) {
	cfg, err := FromLookup(lookupMap(map[string]string{
		EnvQuicAddr:  "0.0.0.0:9000",
		EnvWSAddr:    ":9001",
		EnvWSOrigins: "http://viz.example, *,,",
		EnvLogLevel:  "debug",
		EnvLogFormat: "json",
		EnvWorkers:   "16",
		EnvEpsilon:   "0",
		EnvTLSCert:   "cert.pem",
		EnvTLSKey:    "key.pem",
	}))
	require.NoError(t, err)
	require.Equal(t, Config{
		QuicAddr:  "0.0.0.0:9000",
		WSAddr:    ":9001",
		WSOrigins: []string{"http://viz.example", "*"},
		LogLevel:  slog.LevelDebug,
		LogFormat: "json",
		Workers:   16,
		Epsilon:   0,
		TLSCert:   "cert.pem",
		TLSKey:    "key.pem",
	}, cfg)
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"level":        {EnvLogLevel: "loud"},
		"format":       {EnvLogFormat: "xml"},
		"workers text": {EnvWorkers: "many"},
		"workers zero": {EnvWorkers: "0"},
		"epsilon":      {EnvEpsilon: "-1"},
		"epsilon nan":  {EnvEpsilon: "NaN"},
		"cert only":    {EnvTLSCert: "cert.pem"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookupMap(env))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "RECTOVERLAP_WORKERS=8\nRECTOVERLAP_WS_ADDR=:7000\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv(EnvWSAddr, ":7100")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, ":7100", cfg.WSAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	require.Nil(t, SplitList(" , "))
	require.Equal(t, []string{"a", "b c"}, SplitList("a,, b c ,"))
}
