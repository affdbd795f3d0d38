package lib

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	colorTime  = color.New(color.FgWhite)
	colorAttrs = color.New(color.FgWhite)
	colorDebug = color.New(color.FgBlue)
	colorInfo  = color.New(color.Reset)
	colorWarn  = color.New(color.FgYellow)
	colorError = color.New(color.FgRed, color.Bold)
)

// ColorHandler is a slog.Handler that writes one colored line per record,
// e.g. "[15:04:05] INFO Timer stopped elapsed=3:07".
type ColorHandler struct {
	writer io.Writer
	opts   *slog.HandlerOptions
	attrs  []string
	group  string
	mu     *sync.Mutex
}

func NewColorHandler(w io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ColorHandler{
		writer: w,
		opts:   opts,
		mu:     &sync.Mutex{},
	}
}

func (h *ColorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}

	attrs := append([]string(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.formatAttr(a))
		return true
	})

	var attrsText string
	if len(attrs) > 0 {
		attrsText = " " + colorAttrs.Sprint(strings.Join(attrs, " "))
	}

	message := fmt.Sprintf("%s %s %s%s\n",
		colorTime.Sprintf("[%s]", r.Time.Format("15:04:05")),
		levelColor(r.Level).Sprint(levelText(r.Level)),
		r.Message, attrsText)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, message)
	return err
}

func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append([]string(nil), h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, h.formatAttr(a))
	}
	return &h2
}

func (h *ColorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = h.group + name + "."
	return &h2
}

func (h *ColorHandler) formatAttr(a slog.Attr) string {
	return fmt.Sprintf("%s%s=%v", h.group, a.Key, a.Value)
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return colorError
	case level >= slog.LevelWarn:
		return colorWarn
	case level >= slog.LevelInfo:
		return colorInfo
	default:
		return colorDebug
	}
}

func levelText(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERRO"
	default:
		return level.String()
	}
}
