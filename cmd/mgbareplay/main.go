// Command mgbareplay replays a scenario of logging calls against a simulated
// mGBA console and prints the records the host captured, one level/message
// pair per line. It exists to exercise the transport end to end without an
// emulator build.
//
// Usage:
//
//	mgbareplay <scenario.yaml>
//
// Scenario format:
//
//	host_absent: false
//	serialize_records: true
//	emit:
//	  - level: info
//	    message: "Hello, world!"
//	  - level: fatal
//	    message: "boom"
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/zoobzio/mgbalog"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: mgbareplay <scenario.yaml>")
	}

	scenario, err := Load(os.Args[1])
	if err != nil {
		log.Fatalf("scenario load failed: %v", err)
	}
	if err := Validate(scenario); err != nil {
		log.Fatalf("scenario validation failed: %v", err)
	}

	// --------------------
	// Build the simulated host
	// --------------------

	var consoleOpts []mgbalog.ConsoleOption
	if scenario.HostAbsent {
		consoleOpts = append(consoleOpts, mgbalog.WithoutAck())
	}
	console := mgbalog.NewConsole(consoleOpts...)
	console.Attach(mgbalog.NewSink("stdout-lines", func(_ context.Context, rec mgbalog.Record) error {
		_, err := fmt.Println(rec)
		return err
	}))

	// --------------------
	// Handshake
	// --------------------

	var initOpts []mgbalog.Option
	if scenario.SerializeRecords {
		initOpts = append(initOpts, mgbalog.WithRecordSerialization())
	}
	var logger *slog.Logger
	if err := mgbalog.Init(console, initOpts...); err != nil {
		if !errors.Is(err, mgbalog.ErrNotAcknowledged) {
			log.Fatalf("init failed: %v", err)
		}
		// No host: replay against a scoped transport logger to show the
		// channel stays inert. The process-wide slog default is left
		// alone, matching what Init did (nothing).
		fmt.Fprintln(os.Stderr, "host not acknowledged; logging is inert")
		logger = slog.New(mgbalog.NewHandler(console, initOpts...))
	} else {
		logger = slog.Default()
	}

	// --------------------
	// Replay
	// --------------------

	for _, e := range scenario.Emit {
		level, _ := mgbalog.ParseLevel(e.Level)
		switch level {
		case mgbalog.LevelFatal:
			mgbalog.Fatal(e.Message)
		case mgbalog.LevelError:
			logger.Error(e.Message)
		case mgbalog.LevelWarning:
			logger.Warn(e.Message)
		case mgbalog.LevelInfo:
			logger.Info(e.Message)
		case mgbalog.LevelDebug:
			logger.Debug(e.Message)
		}
		if console.Halted() {
			fmt.Fprintln(os.Stderr, "host halted")
			break
		}
	}
}
