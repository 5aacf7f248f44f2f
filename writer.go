package mgbalog

// Writer serializes one record's text into the shared message buffer, issuing
// send triggers at flush boundaries. A Writer lives for exactly one record:
// create it, write the record's bytes, and Close it so any staged bytes are
// flushed. Close is normally deferred, which guarantees the final flush on
// every exit path.
//
//	w := mgbalog.NewWriter(regs, mgbalog.LevelInfo)
//	defer w.Close()
//	w.WriteString("Hello, world!")
//
// A Writer owns the buffer's write position for its lifetime; under the
// interrupt discipline described on InterruptControl no two Writers exist
// concurrently. Writer implements io.Writer, io.StringWriter and io.Closer.
// Writes never fail: register stores have no observable error.
type Writer struct {
	regs  Registers
	level Level
	index uint8
}

// NewWriter returns a Writer that stages bytes into regs and flushes them at
// the given level. The cursor starts at the beginning of the buffer.
func NewWriter(regs Registers, level Level) *Writer {
	return &Writer{regs: regs, level: level}
}

// writeByte stages a single byte, translating the two protocol-special
// values and flushing when the buffer fills.
func (w *Writer) writeByte(b byte) {
	switch b {
	case '\n':
		// The host treats a flushed buffer as one displayed line, so a
		// newline becomes "end this line now" rather than a literal byte.
		w.index = 0
		w.regs.Send(w.level)
		return
	case 0x00:
		// The host reads the buffer up to the first null, so a literal
		// null would truncate the message. Stage a substitute character
		// instead.
		w.regs.WriteBuffer(w.index, 0x1A)
	default:
		w.regs.WriteBuffer(w.index, b)
	}
	w.index++
	if w.index == 0 {
		// Cursor wrapped: the buffer is exactly full. Flush so the next
		// byte has room.
		w.regs.Send(w.level)
	}
}

// Write stages p into the shared buffer, flushing at newlines and whenever
// the buffer fills. It always returns len(p) and a nil error.
func (w *Writer) Write(p []byte) (int, error) {
	for _, b := range p {
		w.writeByte(b)
	}
	return len(p), nil
}

// WriteString is like Write but avoids copying s to a byte slice.
func (w *Writer) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		w.writeByte(s[i])
	}
	return len(s), nil
}

// Close flushes the record. The send trigger is issued unconditionally, even
// with nothing staged: the host protocol requires an action per record, and a
// Fatal record must halt the host even when its message is empty. Close must
// be called exactly once; it always returns nil.
func (w *Writer) Close() error {
	w.regs.Send(w.level)
	return nil
}
