// Package logger provides a colorized console handler for log/slog,
// used as the console side of the planner's diagnostic channel
// (pkg/diagnostics). Colors are applied by level, plus a small set of
// domain keywords worth highlighting even at info level.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorGray   = "\033[90m"
)

// highlightKeywords are substrings that, when present in an info-level
// message, are rendered in green even though the level itself doesn't
// warrant it — planning outcomes worth a glance during a debug session.
var highlightKeywords = []string{"pushdown", "emitted", "plan complete"}

// Logger wraps slog.Logger; it exists only to give NewDefaultLogger a
// stable constructor name matching the teacher's pkg/logger API.
type Logger struct {
	*slog.Logger
}

// NewDefaultLogger creates a colorized logger writing to stderr at the
// given minimum level. Colors are disabled automatically when stderr
// is not a terminal (e.g. when output is redirected to a file or a
// log-aggregation pipe).
func NewDefaultLogger(level slog.Level) *Logger {
	out := colorable.NewColorableStderr()
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	handler := &colorHandler{
		out:      out,
		level:    level,
		useColor: useColor,
	}

	return &Logger{Logger: slog.New(handler)}
}

// colorHandler is a minimal slog.Handler that colors the level prefix
// and highlights a handful of domain keywords in the message text.
type colorHandler struct {
	out      io.Writer
	level    slog.Level
	useColor bool
	attrs    []slog.Attr
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	levelStr, color := levelLabel(r.Level)
	msg := r.Message

	if h.useColor && r.Level == slog.LevelInfo {
		for _, kw := range highlightKeywords {
			if strings.Contains(strings.ToLower(msg), kw) {
				color = colorGreen
				break
			}
		}
	}

	var b strings.Builder
	if h.useColor {
		b.WriteString(color)
		b.WriteString("[" + levelStr + "] ")
		b.WriteString(msg)
		b.WriteString(colorReset)
	} else {
		b.WriteString("[" + levelStr + "] ")
		b.WriteString(msg)
	}

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})

	b.WriteString("\n")
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &colorHandler{out: h.out, level: h.level, useColor: h.useColor}
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return next
}

func (h *colorHandler) WithGroup(_ string) slog.Handler {
	return h
}

func levelLabel(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return "ERROR", colorRed
	case level >= slog.LevelWarn:
		return "WARN", colorYellow
	case level >= slog.LevelInfo:
		return "INFO", colorReset
	default:
		return "DEBUG", colorGray
	}
}
