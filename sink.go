package mgbalog

import (
	"context"

	"github.com/zoobzio/pipz"
)

// Sink processes records captured by a Console.
//
// Sinks are how host-side consumers observe the transport: test assertions,
// harness output, forwarding captured messages into another logging system.
// A sink is attached to a Console and is called once per record the simulated
// host consumes, in consumption order.
//
// Example sink that prints records the way an external harness expects:
//
//	lineSink := mgbalog.NewSink("lines", func(_ context.Context, rec mgbalog.Record) error {
//	    _, err := fmt.Println(rec)
//	    return err
//	})
//	console.Attach(lineSink)
type Sink struct {
	processor pipz.Chainable[Record]
}

// Process delegates to the underlying processor. This makes Sink implement
// pipz.Chainable[Record].
func (s Sink) Process(ctx context.Context, rec Record) (Record, error) {
	return s.processor.Process(ctx, rec)
}

// Name returns the name of the underlying processor.
func (s Sink) Name() pipz.Name {
	return s.processor.Name()
}

// NewSink creates a sink that runs handler for each captured record. The name
// identifies the sink in pipeline error output.
//
// Delivery is sequential and in order: a sink that returns an error stops the
// remaining sinks for that record. The console ignores the error otherwise —
// host-side observation never feeds back into the transport.
func NewSink(name string, handler func(context.Context, Record) error) *Sink {
	return &Sink{
		processor: pipz.Effect(name, handler),
	}
}
