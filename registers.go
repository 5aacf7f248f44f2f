package mgbalog

// Register-level protocol constants. On Game Boy Advance hardware the three
// registers live at fixed MMIO addresses; the addresses are documented here
// as the canonical binding, but the package only ever touches them through
// the Registers interface so the transport can run against a simulated bank.
//
//	0x04FFF600  256-byte message buffer
//	0x04FFF700  send trigger (16-bit, level-valued)
//	0x04FFF780  enable register (16-bit)
const (
	// BufferSize is the capacity of the shared message buffer. A message
	// longer than this is flushed in BufferSize chunks.
	BufferSize = 256

	// EnableRequest is written to the enable register to request
	// activation of the debug channel.
	EnableRequest uint16 = 0xC0DE

	// EnableAck is read back from the enable register iff a compatible
	// host is present and activation succeeded.
	EnableAck uint16 = 0x1DEA
)

// Registers is the capability the transport needs from the target: the three
// debug registers of the mGBA protocol, exposed as typed read/write
// endpoints. On real hardware an implementation performs volatile stores to
// the fixed MMIO addresses above; on desktop targets Console provides an
// in-memory bank with the host's documented semantics.
//
// This is the exact contract the transport uses. Implementations must not
// block: every method is a bounded register access.
type Registers interface {
	// WriteBuffer stages one byte at the given offset of the shared
	// message buffer. The offset is the transport's cursor; the host does
	// not observe staged bytes until a send trigger.
	WriteBuffer(index uint8, b byte)

	// Send writes a level to the send trigger, instructing the host to
	// consume the staged buffer and record it at that level. A Fatal send
	// additionally halts the host.
	Send(level Level)

	// WriteEnable writes a raw value to the enable register.
	WriteEnable(v uint16)

	// ReadEnable reads the enable register back.
	ReadEnable() uint16
}

// InterruptControl is the target's interrupt-mask primitive. Sequences that
// must appear atomic to interrupt handlers (the init handshake, and every
// record emission under WithRecordSerialization) run between Disable and
// Restore.
//
// Restore takes the value Disable returned, so nesting works: the previous
// suspension state is reinstated exactly, never unconditionally re-enabled.
// On GBA hardware this is the IME register; on desktop targets, where no
// interrupt mechanism exists, use NopInterruptControl.
type InterruptControl interface {
	// Disable suspends interrupt delivery and reports whether it was
	// enabled before the call.
	Disable() (prev bool)

	// Restore reinstates the suspension state returned by the matching
	// Disable.
	Restore(prev bool)
}

// NopInterruptControl is the InterruptControl for targets without an
// interrupt mechanism. Both methods do nothing.
type NopInterruptControl struct{}

// Disable implements InterruptControl.
func (NopInterruptControl) Disable() bool { return false }

// Restore implements InterruptControl.
func (NopInterruptControl) Restore(bool) {}

// InterruptRecorder is an InterruptControl that tracks its own state, for
// asserting critical-section discipline in tests. It starts enabled.
type InterruptRecorder struct {
	enabled  bool
	Disables int
	Restores int
}

// NewInterruptRecorder returns a recorder with interrupts enabled.
func NewInterruptRecorder() *InterruptRecorder {
	return &InterruptRecorder{enabled: true}
}

// Disable implements InterruptControl.
func (r *InterruptRecorder) Disable() bool {
	prev := r.enabled
	r.enabled = false
	r.Disables++
	return prev
}

// Restore implements InterruptControl.
func (r *InterruptRecorder) Restore(prev bool) {
	r.enabled = prev
	r.Restores++
}

// Enabled reports whether interrupts are currently enabled.
func (r *InterruptRecorder) Enabled() bool {
	return r.enabled
}

// Balanced reports whether every Disable has been matched by a Restore and
// the recorder is back in its enabled state.
func (r *InterruptRecorder) Balanced() bool {
	return r.Disables == r.Restores && r.enabled
}
