package mgbalog_test

import (
	"fmt"
	"log/slog"

	"github.com/zoobzio/mgbalog"
)

// Demonstrates driving the transport through a scoped slog logger against
// the simulated host.
func ExampleNewHandler() {
	console := mgbalog.NewConsole()
	console.WriteEnable(mgbalog.EnableRequest)

	logger := slog.New(mgbalog.NewHandler(console))
	logger.Info("Hello, world!")
	logger.Debug("frame drawn", slog.Int("frame", 1))

	for _, rec := range console.Records() {
		fmt.Printf("%s %s\n", rec.Level, rec.Message)
	}
	// Output:
	// INFO Hello, world!
	// DEBUG frame drawn frame=1
}

// Demonstrates the fatal bypass: it re-probes the enable register itself and
// the host halts on the record.
func ExampleFatalTo() {
	console := mgbalog.NewConsole()
	console.WriteEnable(mgbalog.EnableRequest)

	mgbalog.FatalTo(console, "boom")

	for _, rec := range console.Records() {
		fmt.Printf("%s %s\n", rec.Level, rec.Message)
	}
	fmt.Println("halted:", console.Halted())
	// Output:
	// FATAL boom
	// halted: true
}
