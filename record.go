package mgbalog

import "fmt"

// Record is one message as the host received it: the level carried by the
// send trigger and the buffer content consumed at that trigger. Records are
// what Console captures and what sinks process.
type Record struct {
	Level   Level
	Message string
}

// Clone returns a copy of the record. Record is a value type, so this is
// trivial; it satisfies the pipz.Cloner interface so records can flow through
// concurrent pipeline stages.
func (r Record) Clone() Record {
	return r
}

// String formats the record as a line-delimited level/message pair, the form
// external harnesses parse.
func (r Record) String() string {
	return fmt.Sprintf("%s\t%s", r.Level, r.Message)
}
