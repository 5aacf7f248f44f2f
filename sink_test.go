package mgbalog

import (
	"context"
	"testing"
)

// TestNewSinkProcess verifies a sink runs its handler and passes the record
// through unchanged.
func TestNewSinkProcess(t *testing.T) {
	var got []Record
	sink := NewSink("capture", func(_ context.Context, rec Record) error {
		got = append(got, rec)
		return nil
	})

	in := Record{Level: LevelWarning, Message: "heads up"}
	out, err := sink.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("Process returned %v", err)
	}
	if out != in {
		t.Errorf("Process changed the record: %v -> %v", in, out)
	}
	if len(got) != 1 || got[0] != in {
		t.Errorf("handler saw %v, want %v", got, in)
	}
}

// TestSinkName verifies the sink carries its processor name.
func TestSinkName(t *testing.T) {
	sink := NewSink("named", func(context.Context, Record) error { return nil })
	if got := string(sink.Name()); got != "named" {
		t.Errorf("Name() = %q, want %q", got, "named")
	}
}

// TestRecordClone verifies Record satisfies the cloning contract pipz
// pipelines expect.
func TestRecordClone(t *testing.T) {
	rec := Record{Level: LevelDebug, Message: "copy me"}
	if got := rec.Clone(); got != rec {
		t.Errorf("Clone() = %v, want %v", got, rec)
	}
}

// TestRecordString verifies the line form harnesses parse.
func TestRecordString(t *testing.T) {
	rec := Record{Level: LevelError, Message: "broken"}
	if got := rec.String(); got != "ERROR\tbroken" {
		t.Errorf("String() = %q, want %q", got, "ERROR\tbroken")
	}
}
