package mgbalog

import "github.com/pkg/errors"

// Errors returned by Init. Both are recoverable by the caller: a program can
// run without host logging, it just has to decide so itself.
var (
	// ErrNotAcknowledged means the enable handshake was not answered: no
	// compatible host is listening on the debug registers. The transport
	// stays uninitialized and logging calls remain inert.
	ErrNotAcknowledged = errors.New("host did not acknowledge the enable handshake")

	// ErrAlreadyRegistered means the process-wide logger slot was claimed
	// before this Init ran. The existing registration is left untouched.
	ErrAlreadyRegistered = errors.New("a process-wide logger is already registered")
)
