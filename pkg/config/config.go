// Package config reads service settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/QYUbit/rectoverlap/pkg/geom"
	slogadapter "github.com/QYUbit/rectoverlap/pkg/rlog/slog_adapter"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	EnvQuicAddr  = "RECTOVERLAP_QUIC_ADDR"
	EnvWSAddr    = "RECTOVERLAP_WS_ADDR"
	EnvWSOrigins = "RECTOVERLAP_WS_ORIGINS"
	EnvLogLevel  = "RECTOVERLAP_LOG_LEVEL"
	EnvLogFormat = "RECTOVERLAP_LOG_FORMAT"
	EnvWorkers   = "RECTOVERLAP_WORKERS"
	EnvEpsilon   = "RECTOVERLAP_EPSILON"
	EnvTLSCert   = "RECTOVERLAP_TLS_CERT"
	EnvTLSKey    = "RECTOVERLAP_TLS_KEY"
)

type Config struct {
	QuicAddr  string
	WSAddr    string
	WSOrigins []string
	LogLevel  slog.Level
	LogFormat string
	Workers   int
	Epsilon   float64
	TLSCert   string
	TLSKey    string
}

func Default() Config {
	return Config{
		QuicAddr:  "localhost:4242",
		WSAddr:    "localhost:8080",
		LogLevel:  slog.LevelInfo,
		LogFormat: "text",
		Workers:   4,
		Epsilon:   geom.Epsilon,
	}
}

// Load applies the environment on top of Default. Variables set in the
// process environment win over those in the file at path. An empty path
// skips the file; a missing file is an error.
func Load(path string) (Config, error) {
	file := map[string]string{}
	if path != "" {
		var err error
		file, err = godotenv.Read(path)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	})
}

// FromLookup builds a Config from lookup, which reports a variable's value
// and whether it is set.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvQuicAddr); ok && v != "" {
		cfg.QuicAddr = v
	}
	if v, ok := lookup(EnvWSAddr); ok && v != "" {
		cfg.WSAddr = v
	}

	if v, ok := lookup(EnvWSOrigins); ok && v != "" {
		cfg.WSOrigins = SplitList(v)
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := slogadapter.ParseLevel(v)
		if err != nil {
			return Config{}, invalid(EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		switch v {
		case "text", "json":
			cfg.LogFormat = v
		default:
			return Config{}, invalid(EnvLogFormat, fmt.Errorf("want text or json, got %q", v))
		}
	}

	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, invalid(EnvWorkers, err)
		}
		if n < 1 {
			return Config{}, invalid(EnvWorkers, fmt.Errorf("must be positive, got %d", n))
		}
		cfg.Workers = n
	}

	if v, ok := lookup(EnvEpsilon); ok && v != "" {
		eps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, invalid(EnvEpsilon, err)
		}
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			return Config{}, invalid(EnvEpsilon, fmt.Errorf("must be finite and non-negative, got %v", eps))
		}
		cfg.Epsilon = eps
	}

	cfg.TLSCert, _ = lookup(EnvTLSCert)
	cfg.TLSKey, _ = lookup(EnvTLSKey)
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return Config{}, invalid(EnvTLSCert, errors.New("cert and key must be set together"))
	}

	return cfg, nil
}

// SplitList splits a comma separated value, dropping blank entries.
func SplitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func invalid(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
}
