package log

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// discardHandler drops every record. It is the handler of the root logger
// until a command configures logging.
type discardHandler struct{}

// DiscardHandler returns a handler that drops every record.
func DiscardHandler() slog.Handler { return discardHandler{} }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }

// TerminalHandler writes human readable, column aligned records:
//
//	INFO [03-07|09:05:03.042] Wrote binding                  file=token.go package=token
//
// Values of a key are padded to the widest value seen so far so that
// consecutive query records line up.
// TerminalHandler 输出人类可读且按列对齐的日志记录。
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      slog.Level
	useColor bool
	attrs    []slog.Attr

	fieldPadding map[string]int // widest value per key, capped at termCtxMaxPadding
	buf          []byte
}

// NewTerminalHandler returns a terminal handler emitting records at every level.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	return NewTerminalHandlerWithLevel(wr, levelMaxVerbosity, useColor)
}

// NewTerminalHandlerWithLevel returns a terminal handler emitting records at
// lvl and above.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Level, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.format(h.buf, r, h.useColor)
	_, err := h.wr.Write(buf)
	h.buf = buf[:0]
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl
}

// WithGroup is not supported, groups are flattened into the parent.
func (h *TerminalHandler) WithGroup(string) slog.Handler { return h }

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        append(append([]slog.Attr{}, h.attrs...), attrs...),
		fieldPadding: make(map[string]int),
	}
}

type leveler slog.Level

func (l leveler) Level() slog.Level { return slog.Level(l) }

// JSONHandler returns a handler printing one JSON object per record.
func JSONHandler(wr io.Writer) slog.Handler {
	return JSONHandlerWithLevel(wr, levelMaxVerbosity)
}

// JSONHandlerWithLevel is JSONHandler limited to records at level and above.
func JSONHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr { return replaceAttr(attr, false) },
		Level:       leveler(level),
	})
}

// LogfmtHandler returns a handler printing records as logfmt key=value lines.
func LogfmtHandler(wr io.Writer) slog.Handler {
	return LogfmtHandlerWithLevel(wr, levelMaxVerbosity)
}

// LogfmtHandlerWithLevel is LogfmtHandler limited to records at level and above.
func LogfmtHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr { return replaceAttr(attr, true) },
		Level:       leveler(level),
	})
}

// replaceAttr renames the time and level keys to "t" and "lvl". Big numbers
// are written in plain decimal and byte strings in full hex.
func replaceAttr(attr slog.Attr, logfmt bool) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() != slog.KindTime {
			break
		}
		if logfmt {
			return slog.String("t", attr.Value.Time().Format(timeFormat))
		}
		return slog.Attr{Key: "t", Value: attr.Value}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.String("lvl", LevelString(l))
		}
	}
	switch v := attr.Value.Any().(type) {
	case time.Time:
		if logfmt {
			attr.Value = slog.StringValue(v.Format(timeFormat))
		}
	case []byte:
		attr.Value = slog.StringValue("0x" + hex.EncodeToString(v))
	case *big.Int:
		attr.Value = slog.StringValue("<nil>")
		if v != nil {
			attr.Value = slog.StringValue(v.String())
		}
	case *uint256.Int:
		attr.Value = slog.StringValue("<nil>")
		if v != nil {
			attr.Value = slog.StringValue(v.Dec())
		}
	case fmt.Stringer:
		attr.Value = slog.StringValue("<nil>")
		if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || !rv.IsNil() {
			attr.Value = slog.StringValue(v.String())
		}
	}
	return attr
}
