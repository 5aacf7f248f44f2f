package mgbalog

import (
	"context"
	"sync"

	"github.com/zoobzio/pipz"
)

// Console is an in-memory host implementing the Registers contract with the
// documented mGBA semantics. It stands in for the emulator on desktop
// targets, so the whole transport — handshake, writer, dispatcher, fatal
// bypass — can be exercised without a GBA core.
//
// Behavior mirrors what the emulator does with the debug registers:
//
//   - Writing 0xC0DE to the enable register activates the channel; the
//     register then reads back 0x1DEA. Any other write deactivates it.
//   - Writing a level to the send trigger, while the channel is active,
//     consumes the buffer up to the first null byte (at most 256 bytes) as
//     one Record, then zeroes the buffer.
//   - A Fatal send halts the console: the record is still captured, but
//     every register access afterwards is ignored.
//
// Captured records are kept for inspection via Records and delivered, in
// consumption order, to any attached sinks. Console is safe for concurrent
// use.
type Console struct {
	mu      sync.Mutex
	buf     [BufferSize]byte
	enable  uint16
	mute    bool
	halted  bool
	records []Record

	pmu      sync.Mutex
	pipeline *pipz.Sequence[Record]
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithoutAck makes the console behave like an absent or incompatible host:
// the enable register never acknowledges, and sends are ignored. Use it to
// test the degraded paths.
func WithoutAck() ConsoleOption {
	return func(c *Console) {
		c.mute = true
	}
}

// NewConsole returns a console ready to acknowledge the enable handshake.
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WriteBuffer implements Registers.
func (c *Console) WriteBuffer(index uint8, b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.halted {
		return
	}
	c.buf[index] = b
}

// WriteEnable implements Registers.
func (c *Console) WriteEnable(v uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.halted {
		return
	}
	if v == EnableRequest && !c.mute {
		c.enable = EnableAck
		return
	}
	c.enable = v
}

// ReadEnable implements Registers.
func (c *Console) ReadEnable() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enable
}

// Send implements Registers. When the channel is active, the staged buffer is
// consumed as one record at the given level and the buffer is cleared.
func (c *Console) Send(level Level) {
	c.mu.Lock()
	if c.halted || c.enable != EnableAck {
		c.mu.Unlock()
		return
	}
	if level < LevelFatal || level > LevelDebug {
		c.mu.Unlock()
		return
	}

	// The host reads the buffer as a null-terminated string, at most
	// BufferSize bytes.
	n := 0
	for n < BufferSize && c.buf[n] != 0 {
		n++
	}
	rec := Record{Level: level, Message: string(c.buf[:n])}
	c.records = append(c.records, rec)

	// The emulator zeroes the staging area after each consume, so one
	// record's tail never bleeds into the next.
	c.buf = [BufferSize]byte{}

	if level == LevelFatal {
		c.halted = true
	}
	c.mu.Unlock()

	// Deliver outside the lock: a sink may read console state, and a
	// re-entrant register access must not deadlock.
	c.deliver(rec)
}

// Attach registers sinks to receive every subsequently captured record, in
// consumption order, after any sinks attached earlier.
func (c *Console) Attach(sinks ...*Sink) {
	c.pmu.Lock()
	defer c.pmu.Unlock()
	if c.pipeline == nil {
		c.pipeline = pipz.NewSequence[Record]("console-sinks")
	}
	for _, sink := range sinks {
		c.pipeline.Register(*sink)
	}
}

func (c *Console) deliver(rec Record) {
	c.pmu.Lock()
	pipeline := c.pipeline
	c.pmu.Unlock()
	if pipeline == nil {
		return
	}
	// Sink failures stay host-side: observation must never feed back into
	// the transport.
	_, _ = pipeline.Process(context.Background(), rec)
}

// Records returns a copy of every record captured so far.
func (c *Console) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Halted reports whether a Fatal send has halted the console.
func (c *Console) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// Reset clears all captured state — records, buffer, enable latch and halt —
// leaving attached sinks in place.
func (c *Console) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = [BufferSize]byte{}
	c.enable = 0
	c.halted = false
	c.records = nil
}
