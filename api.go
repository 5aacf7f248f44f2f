// Package mgbalog is a logging transport for the mGBA debug protocol.
//
// mGBA exposes a diagnostic channel to the software it runs as three fixed
// registers: a 256-byte message buffer, a level-valued send trigger, and an
// enable register used to detect that a compatible host is listening. This
// package implements the software side of that channel — the buffered writer
// that packs text into the shared buffer with correct flush timing, the
// log/slog handler that dispatches records through it, and the enable
// handshake that claims the channel at startup.
//
// # Basic Usage
//
// Call Init once at process start with the target's register bank. On
// success the transport becomes the process-wide slog logger, enabled down
// to Debug (the finest level the host supports):
//
//	if err := mgbalog.Init(regs); err != nil {
//	    // No compatible host; the program runs without logging.
//	}
//	slog.Info("Hello, world!")
//
// When no host acknowledges the handshake, Init returns ErrNotAcknowledged
// and logging calls stay inert: nothing is registered, nothing crashes.
//
// # Registers
//
// The transport never touches memory directly; it goes through the Registers
// interface. On GBA hardware an implementation performs volatile stores to
// the protocol's fixed MMIO addresses. On desktop targets, Console is an
// in-memory host with the emulator's documented register semantics, which
// makes the whole transport testable in-process:
//
//	console := mgbalog.NewConsole()
//	console.Attach(mgbalog.NewSink("lines", printRecord))
//	_ = mgbalog.Init(console)
//
// # Interrupt Safety
//
// There is no hardware lock on the shared buffer. Sequences that must appear
// atomic to interrupt handlers run with interrupts suspended through the
// InterruptControl passed via WithInterruptControl: the handshake always,
// and every record emission too under WithRecordSerialization. See the
// InterruptControl documentation for the discipline.
//
// # Fatal Bypass
//
// Fatal and Fatalf write directly at the Fatal level without going through
// slog, for panic handlers and other contexts where facade indirection is
// unsafe. The host halts on a Fatal record. The bypass re-probes the enable
// register itself and never raises: with no host present it is a no-op.
package mgbalog

import (
	"log/slog"
	"sync/atomic"
)

// transport is the state the package-level entry points share: the register
// bank and interrupt discipline chosen at Init.
type transport struct {
	regs      Registers
	irq       InterruptControl
	serialize bool
}

var (
	// active is the most recently configured transport. It is remembered
	// even when the handshake fails, so the Fatal bypass can re-probe.
	active atomic.Pointer[transport]

	// claimed guards the process-wide registration: set at most once,
	// never unset.
	claimed atomic.Bool
)

// Init performs the enable handshake against regs and, on success, installs
// the transport as the process-wide slog logger with Debug as the maximum
// enabled level.
//
// The handshake writes the activation value to the enable register and reads
// it back; anything but the acknowledgment value means no compatible host is
// listening and Init returns ErrNotAcknowledged without registering anything.
// If the process-wide slot was already claimed, Init returns
// ErrAlreadyRegistered and leaves the existing registration in place.
//
// The whole enable/verify/register sequence runs with interrupts suspended
// (per WithInterruptControl), so an interrupt handler that logs cannot
// observe a half-performed handshake.
//
// A failed handshake may be retried, with the same or a different bank; once
// an Init has succeeded, every later call fails with ErrAlreadyRegistered.
func Init(regs Registers, opts ...Option) error {
	o := newOptions(opts)

	// Remember the bank before probing: the Fatal bypass must work even
	// when the handshake fails or never runs to completion.
	active.Store(&transport{regs: regs, irq: o.irq, serialize: o.serialize})

	prev := o.irq.Disable()
	defer o.irq.Restore(prev)

	regs.WriteEnable(EnableRequest)
	if regs.ReadEnable() != EnableAck {
		return ErrNotAcknowledged
	}

	if !claimed.CompareAndSwap(false, true) {
		return ErrAlreadyRegistered
	}
	slog.SetDefault(slog.New(NewHandler(regs, opts...)))
	return nil
}
