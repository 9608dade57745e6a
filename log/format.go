package log

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const (
	timeFormat        = "2006-01-02T15:04:05-0700"
	termMsgJust       = 40 // messages are padded to this width before the attributes
	termCtxMaxPadding = 40 // values longer than this never widen a column
	termBytesMax      = 36 // byte strings longer than this are shortened
)

var spaces = bytes.Repeat([]byte{' '}, termMsgJust)

// levelColors are the ANSI colours of the level column.
var levelColors = map[slog.Level]string{
	LevelCrit:  "\x1b[35m",
	LevelError: "\x1b[31m",
	LevelWarn:  "\x1b[33m",
	LevelInfo:  "\x1b[32m",
	LevelDebug: "\x1b[36m",
	LevelTrace: "\x1b[34m",
}

// format renders r as "LEVEL[time] message   key=value ...\n" into buf.
func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	color := ""
	if usecolor {
		color = levelColors[r.Level]
	}
	if buf == nil {
		buf = make([]byte, 0, 30+termMsgJust)
	}
	b := bytes.NewBuffer(buf)

	if color != "" {
		b.WriteString(color)
		b.WriteString(LevelAlignedString(r.Level))
		b.WriteString("\x1b[0m")
	} else {
		b.WriteString(LevelAlignedString(r.Level))
	}
	b.WriteByte('[')
	writeTimeTermFormat(b, r.Time)
	b.WriteString("] ")

	msg := escapeMessage(r.Message)
	b.WriteString(msg)
	if r.NumAttrs()+len(h.attrs) > 0 && len(msg) < termMsgJust {
		b.Write(spaces[:termMsgJust-len(msg)])
	}
	h.formatAttributes(b, r, color)
	return b.Bytes()
}

func (h *TerminalHandler) formatAttributes(buf *bytes.Buffer, r slog.Record, color string) {
	var (
		n      = 0
		nAttrs = len(h.attrs) + r.NumAttrs()
	)
	write := func(attr slog.Attr) bool {
		n++
		buf.WriteByte(' ')
		if color != "" {
			buf.WriteString(color)
		}
		buf.Write(appendEscapeString(buf.AvailableBuffer(), attr.Key))
		if color != "" {
			buf.WriteString("\x1b[0m")
		}
		buf.WriteByte('=')

		val := formatSlogValue(attr.Value, buf.AvailableBuffer())
		length := utf8.RuneCount(val)
		padding := h.fieldPadding[attr.Key]
		if padding < length && length <= termCtxMaxPadding {
			padding = length
			h.fieldPadding[attr.Key] = padding
		}
		buf.Write(val)
		if n < nAttrs && padding > length {
			buf.Write(spaces[:padding-length])
		}
		return true
	}
	for _, attr := range h.attrs {
		write(attr)
	}
	r.Attrs(write)
	buf.WriteByte('\n')
}

// formatSlogValue renders a value for the terminal: integers get thousands
// separators, long byte strings are shortened and strings are quoted when
// they would break the key=value layout.
// formatSlogValue 将 slog.Value 格式化为终端输出。
func formatSlogValue(v slog.Value, tmp []byte) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendEscapeString(tmp, v.String())
	case slog.KindInt64:
		n := v.Int64()
		if n < 0 {
			return appendDecimal(tmp, strconv.FormatUint(uint64(-n), 10), true)
		}
		return appendDecimal(tmp, strconv.FormatInt(n, 10), false)
	case slog.KindUint64:
		return appendDecimal(tmp, strconv.FormatUint(v.Uint64(), 10), false)
	case slog.KindFloat64:
		return strconv.AppendFloat(tmp, v.Float64(), 'f', 3, 64)
	case slog.KindBool:
		return strconv.AppendBool(tmp, v.Bool())
	case slog.KindTime:
		return v.Time().AppendFormat(tmp, timeFormat)
	case slog.KindDuration:
		return appendEscapeString(tmp, v.Duration().String())
	}
	value := v.Any()
	if value == nil {
		return append(tmp, "<nil>"...)
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return append(tmp, "<nil>"...)
	}
	switch x := value.(type) {
	case []byte:
		return appendBytes(tmp, x)
	case *big.Int:
		return appendDecimal(tmp, new(big.Int).Abs(x).String(), x.Sign() < 0)
	case *uint256.Int:
		return appendDecimal(tmp, x.Dec(), false)
	case error:
		return appendEscapeString(tmp, x.Error())
	case fmt.Stringer:
		return appendEscapeString(tmp, x.String())
	}
	return appendEscapeString(tmp, fmt.Sprintf("%+v", value))
}

// appendDecimal writes a run of decimal digits, grouping them by three with
// commas once the number reaches 100000.
func appendDecimal(dst []byte, digits string, neg bool) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if len(digits) <= 5 {
		return append(dst, digits...)
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	dst = append(dst, digits[:lead]...)
	for i := lead; i < len(digits); i += 3 {
		dst = append(dst, ',')
		dst = append(dst, digits[i:i+3]...)
	}
	return dst
}

// appendBytes writes b as 0x-prefixed hex. Call data and revert payloads past
// termBytesMax keep their first word fragment and last four bytes:
// 0xa9059cbb00000000...0000002a[68].
func appendBytes(dst []byte, b []byte) []byte {
	dst = append(dst, "0x"...)
	if len(b) <= termBytesMax {
		return append(dst, hex.EncodeToString(b)...)
	}
	dst = append(dst, hex.EncodeToString(b[:8])...)
	dst = append(dst, "..."...)
	dst = append(dst, hex.EncodeToString(b[len(b)-4:])...)
	return fmt.Appendf(dst, "[%d]", len(b))
}

// appendEscapeString appends s, quoted if it holds spaces or '=' and
// escaped if it holds control or non-ASCII characters.
func appendEscapeString(dst []byte, s string) []byte {
	quote := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '=':
			quote = true
		case r <= '"' || r > '~':
			return strconv.AppendQuote(dst, s)
		}
	}
	if quote {
		dst = append(dst, '"')
		dst = append(dst, s...)
		return append(dst, '"')
	}
	return append(dst, s...)
}

// escapeMessage quotes a message holding control characters other than
// CR, LF and TAB, non-ASCII characters or '='. Spaces are fine in messages.
func escapeMessage(s string) string {
	for _, r := range s {
		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < ' ' || r > '~' || r == '=' {
			return strconv.Quote(s)
		}
	}
	return s
}

// writeTimeTermFormat writes t as "01-02|15:04:05.000".
func writeTimeTermFormat(buf *bytes.Buffer, t time.Time) {
	_, month, day := t.Date()
	hour, min, sec := t.Clock()
	for i, part := range []struct{ v, width int }{
		{int(month), 2}, {day, 2}, {hour, 2}, {min, 2}, {sec, 2}, {t.Nanosecond() / 1e6, 3},
	} {
		if i > 0 {
			buf.WriteByte("-|::."[i-1])
		}
		writePosIntWidth(buf, part.v, part.width)
	}
}

// writePosIntWidth writes a non-negative i zero padded to width digits.
func writePosIntWidth(b *bytes.Buffer, i, width int) {
	var digits [20]byte
	p := len(digits)
	for i >= 10 || width > 1 {
		p--
		digits[p] = byte('0' + i%10)
		i /= 10
		width--
	}
	p--
	digits[p] = byte('0' + i)
	b.Write(digits[p:])
}
