// Package log provides helpers for creating a configured slog.Logger.
//
// Records below error level go to stdout and errors go to stderr, so
// generator failures can be redirected separately from progress output. An
// optional log file receives every record at the configured level.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and is used for per-line scanner output.
const LevelTrace slog.Level = -8

// levels is ordered from most to least verbose; LevelEnum renders it for the
// --log.level flag so the accepted names and ParseLevel cannot drift apart.
var levels = []struct {
	name  string
	level slog.Level
}{
	{"trace", LevelTrace},
	{"debug", slog.LevelDebug},
	{"info", slog.LevelInfo},
	{"warn", slog.LevelWarn},
	{"error", slog.LevelError},
}

// LevelEnum returns the accepted level names as a kong enum value.
func LevelEnum() string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.name
	}
	return strings.Join(names, ",")
}

// ParseLevel maps a level name to its slog.Level. Unknown names yield info.
func ParseLevel(s string) slog.Level {
	for _, l := range levels {
		if l.name == s {
			return l.level
		}
	}
	return slog.LevelInfo
}

// splitHandler routes error records to one handler and everything else to
// another.
type splitHandler struct {
	low, high slog.Handler
}

func (s splitHandler) pick(level slog.Level) slog.Handler {
	if level >= slog.LevelError {
		return s.high
	}
	return s.low
}

func (s splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.pick(level).Enabled(ctx, level)
}

func (s splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.pick(r.Level).Handle(ctx, r)
}

func (s splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return splitHandler{low: s.low.WithAttrs(attrs), high: s.high.WithAttrs(attrs)}
}

func (s splitHandler) WithGroup(name string) slog.Handler {
	return splitHandler{low: s.low.WithGroup(name), high: s.high.WithGroup(name)}
}

// teeHandler hands each record to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

func console(level slog.Level, out, errOut io.Writer) slog.Handler {
	return splitHandler{
		low:  slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}),
		high: slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelError}),
	}
}

// NewLogger builds a logger writing non-error records to out and errors to errOut.
func NewLogger(level slog.Level, out, errOut io.Writer) *slog.Logger {
	return slog.New(console(level, out, errOut))
}

// SetupLogger builds the console logger and, when logFile is set, tees it
// into that file. The returned closers must be closed once logging is done.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	h := console(level, os.Stdout, os.Stderr)
	if logFile == "" {
		return slog.New(h), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	tee := teeHandler{h, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})}
	return slog.New(tee), []io.Closer{f}, nil
}
