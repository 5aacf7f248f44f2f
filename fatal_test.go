package mgbalog

import (
	"log/slog"
	"strings"
	"testing"
)

// TestFatalDeliversAndHalts covers the literal scenario: Fatal("boom") with a
// host present yields one FATAL flush and the host halts.
func TestFatalDeliversAndHalts(t *testing.T) {
	resetTransport(t)
	c := NewConsole()
	if err := Init(c); err != nil {
		t.Fatalf("Init returned %v", err)
	}

	Fatal("boom")

	records := c.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0] != (Record{LevelFatal, "boom"}) {
		t.Errorf("record = %v, want FATAL boom", records[0])
	}
	if !c.Halted() {
		t.Error("host should halt on a Fatal flush")
	}

	// Nothing gets through after the halt.
	slog.Info("after the end")
	if got := len(c.Records()); got != 1 {
		t.Errorf("got %d records after halt, want 1", got)
	}
}

// TestFatalHostAbsent verifies the bypass degrades to a silent no-op when the
// enable register does not acknowledge.
func TestFatalHostAbsent(t *testing.T) {
	resetTransport(t)
	c := NewConsole(WithoutAck())
	_ = Init(c) // fails, but the bank is remembered

	Fatal("boom")

	if got := len(c.Records()); got != 0 {
		t.Errorf("got %d records, want 0", got)
	}
	if c.Halted() {
		t.Error("absent host must not halt")
	}
}

// TestFatalWithoutInit verifies Fatal before any Init is a no-op rather than
// a panic.
func TestFatalWithoutInit(t *testing.T) {
	resetTransport(t)
	Fatal("into the void")
}

// TestFatalTo verifies the explicit-bank form used before Init has run. The
// bypass still re-probes the enable register itself.
func TestFatalTo(t *testing.T) {
	t.Run("host present", func(t *testing.T) {
		c := enabledConsole(t)
		FatalTo(c, "early boom")

		records := c.Records()
		if len(records) != 1 || records[0] != (Record{LevelFatal, "early boom"}) {
			t.Errorf("records = %v, want one FATAL early boom", records)
		}
	})

	t.Run("host absent", func(t *testing.T) {
		c := NewConsole()
		FatalTo(c, "early boom")
		if got := len(c.Records()); got != 0 {
			t.Errorf("got %d records, want 0", got)
		}
	})

	t.Run("nil bank", func(t *testing.T) {
		FatalTo(nil, "nowhere")
	})
}

// TestFatalfFormats verifies formatting happens before the bypass writes.
func TestFatalfFormats(t *testing.T) {
	resetTransport(t)
	c := NewConsole()
	if err := Init(c); err != nil {
		t.Fatalf("Init returned %v", err)
	}

	Fatalf("crash at %#x", 0x8000)

	records := c.Records()
	if len(records) != 1 || records[0].Message != "crash at 0x8000" {
		t.Errorf("records = %v, want one FATAL crash at 0x8000", records)
	}
}

// TestFatalTruncation verifies the accepted protocol limitation: the host
// halts at the first flush boundary, truncating longer messages.
func TestFatalTruncation(t *testing.T) {
	resetTransport(t)
	c := NewConsole()
	if err := Init(c); err != nil {
		t.Fatalf("Init returned %v", err)
	}

	Fatal(strings.Repeat("x", 300))

	records := c.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := len(records[0].Message); got != BufferSize {
		t.Errorf("message carries %d bytes, want %d", got, BufferSize)
	}
	if !c.Halted() {
		t.Error("host should halt at the first Fatal flush")
	}
}

// TestFatalEmptyMessage verifies an empty Fatal still flushes, so the halt is
// delivered even with nothing to say.
func TestFatalEmptyMessage(t *testing.T) {
	resetTransport(t)
	c := NewConsole()
	if err := Init(c); err != nil {
		t.Fatalf("Init returned %v", err)
	}

	Fatal("")

	records := c.Records()
	if len(records) != 1 || records[0] != (Record{LevelFatal, ""}) {
		t.Errorf("records = %v, want one empty FATAL", records)
	}
	if !c.Halted() {
		t.Error("empty Fatal flush should still halt the host")
	}
}

// TestFatalSerialization verifies the strict variant wraps the bypass in a
// critical section too.
func TestFatalSerialization(t *testing.T) {
	resetTransport(t)
	rec := NewInterruptRecorder()
	c := NewConsole()
	if err := Init(c, WithInterruptControl(rec), WithRecordSerialization()); err != nil {
		t.Fatalf("Init returned %v", err)
	}
	base := rec.Disables // the handshake's own critical section

	Fatal("boom")

	if rec.Disables != base+1 {
		t.Errorf("disables = %d, want %d", rec.Disables, base+1)
	}
	if !rec.Balanced() {
		t.Error("interrupt state not restored after Fatal")
	}
}
