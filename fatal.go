package mgbalog

import "fmt"

// Fatal writes msg directly at the Fatal level, bypassing slog and the
// Handler entirely. The host halts after recording the message.
//
// This path is for contexts where facade indirection would risk recursive
// failure — panic handlers above all. It re-probes the enable register
// itself: if no host acknowledges, or Init was never called, it does nothing.
// It never returns an error and never panics; a rendering failure is
// discarded rather than propagated, trading delivery guarantees for safety
// in fault contexts.
//
// The host halts on the first flush it receives at Fatal, so a message
// longer than the buffer is truncated at its first flush boundary. That is
// protocol behavior, not a defect.
func Fatal(msg string) {
	t := active.Load()
	if t == nil {
		return
	}
	fatal(t.regs, t.irq, t.serialize, msg)
}

// Fatalf is Fatal with fmt.Sprintf formatting.
func Fatalf(format string, args ...any) {
	Fatal(fmt.Sprintf(format, args...))
}

// FatalTo is Fatal against an explicit register bank, for the window before
// Init has configured the transport.
func FatalTo(regs Registers, msg string) {
	if regs == nil {
		return
	}
	fatal(regs, NopInterruptControl{}, false, msg)
}

func fatal(regs Registers, irq InterruptControl, serialize bool, msg string) {
	// This path must never itself fail; it is commonly invoked from
	// panic handlers.
	defer func() { _ = recover() }()

	if serialize {
		prev := irq.Disable()
		defer irq.Restore(prev)
	}

	if regs.ReadEnable() != EnableAck {
		return
	}
	w := NewWriter(regs, LevelFatal)
	defer w.Close()
	_, _ = w.WriteString(msg)
}
