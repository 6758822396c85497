package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/mazerepair/internal/ui/output"
	"go.trai.ch/mazerepair/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record:
// a level glyph, the message and key=value attributes.
type PrettyHandler struct {
	mu     *sync.Mutex
	out    *termenv.Output
	level  slog.Leveler
	prefix string
	// fields holds attributes added through WithAttrs, already rendered.
	fields []string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		mu:    &sync.Mutex{},
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	glyph, color := decorate(r.Level)

	var b strings.Builder
	if glyph != "" {
		b.WriteString(glyph)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)

	fields := h.fields
	if r.NumAttrs() > 0 {
		fields = append([]string(nil), h.fields...)
		r.Attrs(func(attr slog.Attr) bool {
			fields = appendAttr(fields, h.prefix, attr)
			return true
		})
	}
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f)
	}

	line := h.out.String(b.String()).Foreground(color).String() + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(line)
	return err
}

// WithAttrs returns a handler that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.fields = append([]string(nil), h.fields...)
	for _, attr := range attrs {
		clone.fields = appendAttr(clone.fields, h.prefix, attr)
	}
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func decorate(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Dot, termenv.RGBColor(string(style.Slate))
	default:
		return "", termenv.RGBColor(string(style.Teal))
	}
}

// appendAttr renders attr as key=value. Group values are flattened into
// dotted keys and empty attributes are dropped.
func appendAttr(fields []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}

	if attr.Value.Kind() == slog.KindGroup {
		inner := prefix
		if attr.Key != "" {
			inner += attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			fields = appendAttr(fields, inner, a)
		}
		return fields
	}

	value := attr.Value.String()
	if value == "" || strings.ContainsAny(value, " \t\n\"=") {
		value = strconv.Quote(value)
	}
	return append(fields, prefix+attr.Key+"="+value)
}
