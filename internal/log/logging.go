// Package log builds the slog loggers used by the host front-ends and the
// board firmware.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below Debug and is used for per-cycle output.
const LevelTrace slog.Level = -8

// ParseLevel maps a --log-level value to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// route sends records in [min, max) to h; max applies only when bounded.
type route struct {
	min, max slog.Level
	bounded  bool
	h        slog.Handler
}

func (r route) takes(l slog.Level) bool {
	return l >= r.min && (!r.bounded || l < r.max)
}

// router dispatches each record to every route whose level range holds it.
type router []route

func (rs router) Enabled(ctx context.Context, l slog.Level) bool {
	for _, r := range rs {
		if r.takes(l) && r.h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (rs router) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, r := range rs {
		if r.takes(rec.Level) && r.h.Enabled(ctx, rec.Level) {
			errs = append(errs, r.h.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (rs router) WithAttrs(attrs []slog.Attr) slog.Handler {
	return rs.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (rs router) WithGroup(name string) slog.Handler {
	return rs.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (rs router) each(fn func(slog.Handler) slog.Handler) router {
	out := make(router, len(rs))
	for i, r := range rs {
		r.h = fn(r.h)
		out[i] = r
	}
	return out
}

func text(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// consoleRoutes splits output between stdout and stderr at the error level.
func consoleRoutes(stdout, stderr io.Writer, level slog.Level) router {
	return router{
		{min: level, max: slog.LevelError, bounded: true, h: text(stdout, level)},
		{min: slog.LevelError, h: text(stderr, slog.LevelError)},
	}
}

// SetupLogger returns the host logger. Without a log file, errors go to
// stderr and everything else to stdout; with one, the console gets
// everything on stderr and the file gets a full copy. The returned closers
// must be closed on exit.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	if logFile == "" {
		return slog.New(consoleRoutes(os.Stdout, os.Stderr, level)), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	rs := router{
		{min: level, h: text(os.Stderr, level)},
		{min: level, h: text(f, level)},
	}
	return slog.New(rs), []io.Closer{f}, nil
}

// New returns a text logger with a single sink, such as the device UART.
func New(w io.Writer, logLevel string) *slog.Logger {
	return slog.New(text(w, ParseLevel(logLevel)))
}
