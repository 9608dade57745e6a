package log

import (
	"log/slog"
	"sync/atomic"
)

// root is the process wide logger. It discards everything until a command
// installs a handler through SetDefault, so library users of the codec see no
// output unless they ask for it.
var root atomic.Pointer[Logger]

func init() {
	SetDefault(NewLogger(DiscardHandler()))
}

// SetDefault replaces the root logger. Loggers created by this package also
// become slog's default so records from libraries using slog directly share
// the same output.
// SetDefault 替换全局日志记录器，并同步为 slog 的默认记录器。
func SetDefault(l Logger) {
	root.Store(&l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return *root.Load()
}

// New returns a child of the root logger carrying ctx.
func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}

// The package level helpers call Write directly so that the caller frame
// lines up with the Logger methods.

// Trace logs at trace level on the root logger:
//
//	log.Trace("Running contract query", "input", input)
func Trace(msg string, ctx ...interface{}) { Root().Write(LevelTrace, msg, ctx...) }

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...interface{}) { Root().Write(LevelDebug, msg, ctx...) }

// Info logs at info level on the root logger.
func Info(msg string, ctx ...interface{}) { Root().Write(LevelInfo, msg, ctx...) }

// Warn logs at warn level on the root logger.
func Warn(msg string, ctx ...interface{}) { Root().Write(LevelWarn, msg, ctx...) }

// Error logs at error level on the root logger.
func Error(msg string, ctx ...interface{}) { Root().Write(LevelError, msg, ctx...) }
