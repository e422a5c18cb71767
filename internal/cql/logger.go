package cql

import "go.uber.org/zap"

// Logger records builder activity by category.
type Logger interface {
	Log(category string, args ...any)
}

// NopLogger discards everything. Artifact exports build with it.
type NopLogger struct{}

// Log implements Logger.
func (NopLogger) Log(string, ...any) {}

// ZapLogger writes builder activity at debug level.
type ZapLogger struct {
	l *zap.Logger
}

// NewZapLogger wraps l. A nil l yields a no-op zap logger.
func NewZapLogger(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{l: l.Named("cql")}
}

// Log implements Logger.
func (z ZapLogger) Log(category string, args ...any) {
	z.l.Debug(category, zap.Any("args", args))
}
