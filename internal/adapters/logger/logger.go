// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error provides it.
type messager interface {
	Message() string
}

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog. It is safe for concurrent use.
type Logger struct {
	logger   *slog.Logger
	jsonMode bool
}

// New creates a Logger writing to w at the given level.
// format is one of "pretty", "json" or "auto"; auto picks pretty for terminals.
func New(w io.Writer, level slog.Level, format string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	if resolveJSON(w, format) {
		return &Logger{logger: slog.New(slog.NewJSONHandler(w, opts)), jsonMode: true}
	}
	return &Logger{logger: slog.New(NewPrettyHandler(w, opts))}
}

// FromSettings builds a Logger from the logging configuration.
func FromSettings(w io.Writer, s domain.LoggingSettings) (*Logger, error) {
	level, err := ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}
	return New(w, level, s.Format), nil
}

// ParseLevel converts a configured level name into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, zerr.With(zerr.With(domain.ErrInvalidConfig, "key", "logging.level"), "value", name)
	}
	return level, nil
}

func resolveJSON(w io.Writer, format string) bool {
	switch format {
	case domain.LogFormatJSON:
		return true
	case domain.LogFormatAuto:
		f, ok := w.(*os.File)
		return !ok || !term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
	default:
		return false
	}
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
// In pretty mode the zerr cause chain is rendered one cause per line.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(FormatError(err))
}

// FormatError renders an error and its causes as an indented report.
func FormatError(err error) string {
	var messages []string
	for _, current := range flatten(err) {
		if m, ok := current.(messager); ok {
			messages = append(messages, m.Message()+formatMetadata(current))
			continue
		}
		messages = append(messages, current.Error())
	}

	var lines []string
	for i, msg := range messages {
		parts := strings.Split(msg, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+parts[0])
			for _, line := range parts[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+parts[0])
		for _, line := range parts[1:] {
			lines = append(lines, "      "+line)
		}
	}
	return strings.Join(lines, "\n")
}

// formatMetadata renders zerr metadata as " (k=v, ...)" with sorted keys.
func formatMetadata(err error) string {
	m, ok := err.(interface{ Metadata() map[string]any })
	if !ok {
		return ""
	}
	meta := m.Metadata()
	if len(meta) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return " (" + strings.Join(pairs, ", ") + ")"
}

// flatten walks the error tree depth first. zerr errors contribute their own
// message and continue into the cause, as do wrappers whose text ends with
// their cause. Joined errors contribute each branch. Any other error ends its
// branch with its full text.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	if _, ok := err.(messager); ok {
		return append([]error{err}, flatten(errors.Unwrap(err))...)
	}
	// "prefix: cause" wrappers split into the prefix and the cause chain.
	if cause := errors.Unwrap(err); cause != nil {
		if prefix, ok := strings.CutSuffix(err.Error(), ": "+cause.Error()); ok {
			return append([]error{errors.New(prefix)}, flatten(cause)...)
		}
	}
	return []error{err}
}
