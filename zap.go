package mgbalog

import (
	"sort"

	"go.uber.org/zap/zapcore"
)

// NewZapCore returns a zapcore.Core that writes through the register
// transport, so zap-based programs can target the host console:
//
//	logger := zap.New(mgbalog.NewZapCore(regs))
//	logger.Info("Hello, world!", zap.Int("frame", 60))
//
// Levels map Debug→Debug, Info→Info, Warn→Warning and Error/DPanic/Panic→
// Error. zap's Fatal maps to the host's Fatal: the host halts on the record,
// then zap exits the process, which is the consistent outcome on both sides.
// Fields are rendered as space-separated key=value pairs after the message,
// in sorted key order.
func NewZapCore(regs Registers, opts ...Option) zapcore.Core {
	o := newOptions(opts)
	return &zapCore{regs: regs, irq: o.irq, serialize: o.serialize}
}

type zapCore struct {
	regs      Registers
	irq       InterruptControl
	serialize bool
	fields    []zapcore.Field
}

func levelFromZap(l zapcore.Level) Level {
	switch {
	case l <= zapcore.DebugLevel:
		return LevelDebug
	case l == zapcore.InfoLevel:
		return LevelInfo
	case l == zapcore.WarnLevel:
		return LevelWarning
	case l >= zapcore.FatalLevel:
		return LevelFatal
	default:
		// Error, DPanic and Panic: severe, but only Fatal may halt
		// the host.
		return LevelError
	}
}

// Enabled implements zapcore.Core. zap's level range has no trace band, so
// every level has a host analog.
func (c *zapCore) Enabled(zapcore.Level) bool { return true }

// With implements zapcore.Core.
func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// Check implements zapcore.Core.
func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core. One entry becomes one transport writer,
// flushed by its deferred Close.
func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	level := levelFromZap(ent.Level)

	if c.serialize {
		prev := c.irq.Disable()
		defer c.irq.Restore(prev)
	}

	w := NewWriter(c.regs, level)
	defer w.Close()

	render(w, "%s", ent.Message)
	if len(c.fields) == 0 && len(fields) == 0 {
		return nil
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		render(w, " %s=%v", k, enc.Fields[k])
	}
	return nil
}

// Sync implements zapcore.Core. Flushing is per-record writer scope exit;
// nothing buffers across records.
func (c *zapCore) Sync() error { return nil }
