package mgbalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Handler bridges log/slog to the register transport. Each record it handles
// becomes exactly one Writer: the record's message and attributes are
// rendered into the shared buffer and flushed when the writer's scope ends.
//
// Handler filters out the band below slog.LevelDebug — the host has no
// trace-grained level — and never emits at LevelFatal; that level is reserved
// for the Fatal bypass because it halts the host.
//
// Most programs install the handler process-wide through Init. Constructing
// one directly is useful for scoped loggers and tests:
//
//	logger := slog.New(mgbalog.NewHandler(console))
//	logger.Info("Hello, world!")
type Handler struct {
	regs      Registers
	irq       InterruptControl
	serialize bool

	// attrText holds the attrs accumulated by WithAttrs, already rendered;
	// prefix is the open group path from WithGroup, "a.b." form.
	attrText string
	prefix   string
}

// NewHandler returns a Handler writing to regs.
func NewHandler(regs Registers, opts ...Option) *Handler {
	o := newOptions(opts)
	return &Handler{regs: regs, irq: o.irq, serialize: o.serialize}
}

// Enabled implements slog.Handler. It reports true for every level the host
// can represent, which is everything from slog.LevelDebug up.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	_, ok := levelFromSlog(level)
	return ok
}

// Handle implements slog.Handler. Trace-band records are dropped silently;
// everything else is rendered into one transport writer whose deferred Close
// issues the record's final flush.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	level, ok := levelFromSlog(rec.Level)
	if !ok {
		return nil
	}

	if h.serialize {
		prev := h.irq.Disable()
		defer h.irq.Restore(prev)
	}

	w := NewWriter(h.regs, level)
	defer w.Close()

	render(w, "%s", rec.Message)
	if h.attrText != "" {
		render(w, "%s", h.attrText)
	}
	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(w, h.prefix, a)
		return true
	})
	return nil
}

// WithAttrs implements slog.Handler. The attrs are rendered once, up front,
// so repeated records only pay for a string write.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	h2 := *h
	h2.attrText = h.attrText + b.String()
	return &h2
}

// WithGroup implements slog.Handler. Group names qualify subsequent attr keys
// in dotted form.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// appendAttr renders one attr as " prefixkey=value", flattening groups into
// dotted keys.
func appendAttr(w io.Writer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		if a.Key != "" {
			prefix = prefix + a.Key + "."
		}
		for _, ga := range group {
			appendAttr(w, prefix, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	render(w, " %s%s=%v", prefix, a.Key, a.Value.Any())
}

// render writes formatted text, treating failure as unrecoverable: a
// half-staged shared buffer cannot be safely abandoned mid-record.
func render(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		panic(fmt.Sprintf("mgbalog: write to host log buffer failed: %v", err))
	}
}
