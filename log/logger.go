package log

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"time"
)

// errorKey is attached to records logged with a dangling key.
const errorKey = "LOG_ERROR"

// Levels. Trace sits below slog's debug level and carries the per-query
// encode/run/decode records, Crit only silences everything else.
const (
	levelMaxVerbosity slog.Level = math.MinInt
	LevelTrace        slog.Level = -8
	LevelDebug                   = slog.LevelDebug
	LevelInfo                    = slog.LevelInfo
	LevelWarn                    = slog.LevelWarn
	LevelError                   = slog.LevelError
	LevelCrit         slog.Level = 12
)

// legacyLevels maps the numeric --verbosity values (0 = crit ... 5 = trace)
// onto slog levels.
// legacyLevels 将 --verbosity 数值映射为 slog 级别。
var legacyLevels = [...]slog.Level{LevelCrit, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

// FromLegacyLevel converts a --verbosity value to a slog level. Values past
// trace are clamped to trace, negative ones to crit.
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl < 0:
		return LevelCrit
	case lvl >= len(legacyLevels):
		return LevelTrace
	}
	return legacyLevels[lvl]
}

// levelNames holds the lowercase and the terminal-aligned name of each level.
var levelNames = map[slog.Level][2]string{
	LevelTrace: {"trace", "TRACE"},
	LevelDebug: {"debug", "DEBUG"},
	LevelInfo:  {"info", "INFO "},
	LevelWarn:  {"warn", "WARN "},
	LevelError: {"error", "ERROR"},
	LevelCrit:  {"crit", "CRIT "},
}

// LevelString returns the lowercase name of a level.
func LevelString(l slog.Level) string {
	if n, ok := levelNames[l]; ok {
		return n[0]
	}
	return "unknown"
}

// LevelAlignedString returns the five character name of a level used by the
// terminal handler.
func LevelAlignedString(l slog.Level) string {
	if n, ok := levelNames[l]; ok {
		return n[1]
	}
	return "unknown level"
}

// A Logger writes key/value pairs to a slog handler. Records always carry
// the program counter of the caller of the Logger method, so source
// positions point into the codec or CLI and not into this package.
// Logger 将键值对写入 slog 处理器。
type Logger interface {
	// With returns a Logger that adds ctx to every record.
	With(ctx ...interface{}) Logger

	// New is an alias for With.
	New(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})

	// Write logs msg at the given level.
	Write(level slog.Level, msg string, attrs ...any)

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level slog.Level) bool

	// Handler returns the handler records are written to.
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a Logger writing to h.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) Handler() slog.Handler { return l.inner.Handler() }

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) With(ctx ...interface{}) Logger { return &logger{l.inner.With(ctx...)} }

func (l *logger) New(ctx ...interface{}) Logger { return l.With(ctx...) }

// Write builds the record by hand to pin the caller frame. Every exported
// entry point is exactly two frames above runtime.Callers.
func (l *logger) Write(level slog.Level, msg string, attrs ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	if len(attrs)%2 != 0 {
		attrs = append(attrs, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.Write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.Write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.Write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.Write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.Write(LevelError, msg, ctx...) }
