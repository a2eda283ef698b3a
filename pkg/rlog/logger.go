// Package rlog is the logging seam shared by the overlap services.
package rlog

//go:generate mockgen -destination=rlogmock/logger.go -package=rlogmock github.com/QYUbit/rectoverlap/pkg/rlog Logger

type Logger interface {
	Info(s string, keyValues ...any)
	Error(s string, keyValues ...any)
	Debug(s string, keyValues ...any)
	Warn(s string, keyValues ...any)
}

// Discard drops every record.
var Discard Logger = discard{}

type discard struct{}

func (discard) Info(string, ...any)  {}
func (discard) Error(string, ...any) {}
func (discard) Debug(string, ...any) {}
func (discard) Warn(string, ...any)  {}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}
