package mgbalog

// Option configures the transport: Init, NewHandler and NewZapCore all take
// the same options.
type Option func(*options)

type options struct {
	irq       InterruptControl
	serialize bool
}

func newOptions(opts []Option) options {
	o := options{irq: NopInterruptControl{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithInterruptControl supplies the target's interrupt-mask primitive. The
// init handshake always runs under it; record emission additionally runs
// under it when WithRecordSerialization is set. The default is
// NopInterruptControl, appropriate for targets without interrupts.
func WithInterruptControl(ic InterruptControl) Option {
	return func(o *options) {
		if ic != nil {
			o.irq = ic
		}
	}
}

// WithRecordSerialization suspends interrupts around every record emission,
// fully serializing buffer access against handler-triggered re-entrant
// logging. Without it only the init handshake is protected, and an interrupt
// handler that logs mid-record can interleave its bytes with the in-flight
// record's.
func WithRecordSerialization() Option {
	return func(o *options) {
		o.serialize = true
	}
}
