package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes used by the pretty handler.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler renders colorized records, either as a single key=value line
// or as an indented JSON-like object.
type prettyHandler struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	formatTime func(time.Time) string
	attrs      []slog.Attr
	groups     []string
	multiline  bool
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	multiline bool,
	formatTime func(time.Time) string,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		formatTime: formatTime,
		multiline:  multiline,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if h.multiline {
		buf.WriteString("{")
	}

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			h.writeField(&buf, slog.TimeKey, colorBlue, s)
		}
	}

	h.writeField(&buf, slog.LevelKey, levelColor(r.Level),
		strings.ToUpper(Level(r.Level).String()))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(&buf, slog.SourceKey, colorGray,
				fmt.Sprintf("%s:%d", src.File, src.Line))
		}
	}

	h.writeField(&buf, slog.MessageKey, "", r.Message)

	prefix := strings.Join(h.groups, ".")

	for _, a := range h.attrs {
		h.writeAttr(&buf, prefix, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, prefix, a)

		return true
	})

	if h.multiline {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// writeAttr writes a, flattening groups into dotted keys.
func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			h.writeAttr(buf, key, g)
		}

		return
	}

	color, text := valueColor(a.Value)
	h.writeField(buf, key, color, text)
}

func (h *prettyHandler) writeField(buf *bytes.Buffer, key, color, text string) {
	switch {
	case h.multiline:
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
	case buf.Len() > 0:
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(key)
	buf.WriteString(colorReset)

	if h.multiline {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	if color == "" {
		buf.WriteString(text)

		return
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

func valueColor(v slog.Value) (color, text string) {
	switch v.Kind() {
	case slog.KindInt64:
		return colorYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return colorYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		if v.Bool() {
			return colorGreen, "true"
		}

		return colorRed, "false"
	case slog.KindDuration:
		return colorMagenta, v.Duration().String()
	case slog.KindTime:
		return colorBlue, v.Time().Format(time.RFC3339)
	default:
		return colorCyan, v.String()
	}
}
