// Package logx builds the structured logger shared by the driver and the CLI.
package logx

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field names used across entail log lines.
const (
	FieldPath       = "path"
	FieldTrait      = "trait"
	FieldSites      = "sites"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldCache      = "cache"
	FieldJobs       = "jobs"
	FieldError      = "error"
)

// Options configures New.
type Options struct {
	Verbose bool      // debug level instead of warn
	JSON    bool      // production JSON encoding
	Out     io.Writer // defaults to stderr
}

// New returns a logger writing to opts.Out. Stdout is never used: it carries
// rewritten sources.
func New(opts Options) *zap.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	level := zap.WarnLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), level))
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
