package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/mattn/go-runewidth"
)

// DefaultMaxWidth is the display width at which string values are cut.
const DefaultMaxWidth = 80

// Ellipsis marks a truncated value.
const Ellipsis = "..."

// TruncatingHandler wraps an slog.Handler to shorten long string values.
// Values wider than maxWidth display columns are cut and end with Ellipsis.
type TruncatingHandler struct {
	// handler is the underlying slog handler that receives shortened records.
	handler slog.Handler

	// maxWidth is the display width limit of a string value.
	maxWidth int
}

// NewTruncatingHandler creates a TruncatingHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A maxWidth not larger
// than the ellipsis falls back to DefaultMaxWidth.
func NewTruncatingHandler(handler slog.Handler, maxWidth int) *TruncatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxWidth <= runewidth.StringWidth(Ellipsis) {
		maxWidth = DefaultMaxWidth
	}
	return &TruncatingHandler{handler: handler, maxWidth: maxWidth}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle shortens the record's attributes and passes it to the underlying handler.
func (h *TruncatingHandler) Handle(ctx context.Context, r slog.Record) error {
	shortened := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		shortened.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, shortened)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	shortened := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		shortened[i] = h.truncateAttr(a)
	}
	return &TruncatingHandler{handler: h.handler.WithAttrs(shortened), maxWidth: h.maxWidth}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{handler: h.handler.WithGroup(name), maxWidth: h.maxWidth}
}

// truncateAttr shortens a single attribute, recursively handling groups.
func (h *TruncatingHandler) truncateAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		shortened := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			shortened[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(shortened...)}
	case slog.KindString:
		s := a.Value.String()
		if runewidth.StringWidth(s) > h.maxWidth {
			return slog.String(a.Key, runewidth.Truncate(s, h.maxWidth, Ellipsis))
		}
	}
	return a
}

// NewLogger creates the application logger: a text handler writing to w,
// wrapped in a TruncatingHandler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncatingHandler(textHandler, DefaultMaxWidth))
}
