// Package logging configures the process-wide logrus logger and carries
// per-session fields through context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	sessionKey contextKey = "lingua_session"
	purposeKey contextKey = "lingua_purpose"
)

var std = logrus.New()

func init() {
	std.SetLevel(logrus.WarnLevel)
}

// Options controls where and how much is logged.
type Options struct {
	// Level is a logrus level name. Empty means "info".
	Level string

	// File, when set, receives log output instead of Output. The TUI sets
	// this because it owns the terminal.
	File string

	// Output is used when File is empty. Defaults to stderr.
	Output io.Writer

	JSON bool
}

// Setup applies opts to the shared logger. The returned closer releases the
// log file, if one was opened.
func Setup(opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	std.SetLevel(level)

	if opts.JSON {
		std.SetFormatter(&logrus.JSONFormatter{})
	} else {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: opts.File != ""})
	}

	if opts.File == "" {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		std.SetOutput(out)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	std.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Logger returns the shared logger.
func Logger() *logrus.Logger {
	return std
}

// WithSessionID tags ctx with the lesson session it belongs to.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// SessionIDFrom returns the session id stored by WithSessionID, or "".
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

// WithPurpose tags ctx with the purpose of the model call it serves.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose stored by WithPurpose, or "".
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey).(string)
	return p
}

// WithContext returns a logger carrying the session id and purpose found
// in ctx.
func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(std)
	if id := SessionIDFrom(ctx); id != "" {
		entry = entry.WithField("session", id)
	}
	if p := PurposeFrom(ctx); p != "" {
		entry = entry.WithField("purpose", p)
	}
	return entry
}
