package mgbalog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level is one of the five logging levels understood by the host, carrying
// the numeric code the send register expects. The host has no analog for
// trace-grained logging, so there are exactly five values.
type Level uint16

// Host levels in decreasing severity. The 0x100 bit marks the value as a
// debug-channel send; the low bits select the level.
const (
	// LevelFatal causes the host to halt execution after recording the
	// message. It is reserved for the Fatal bypass and never produced by
	// facade-level mapping.
	LevelFatal Level = 0x100 + iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

// levelFromSlog maps a facade severity onto a host level. The band below
// slog.LevelDebug is trace-grained logging, which the host cannot represent;
// it reports ok=false and the record is dropped. Everything at or above
// slog.LevelError maps to LevelError: LevelFatal halts the host and is never
// reachable through the facade.
func levelFromSlog(l slog.Level) (_ Level, ok bool) {
	switch {
	case l < slog.LevelDebug:
		return 0, false
	case l < slog.LevelInfo:
		return LevelDebug, true
	case l < slog.LevelWarn:
		return LevelInfo, true
	case l < slog.LevelError:
		return LevelWarning, true
	default:
		return LevelError, true
	}
}

// String returns the level's display name, matching what mGBA shows for the
// corresponding log category.
func (l Level) String() string {
	switch l {
	case LevelFatal:
		return "FATAL"
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return fmt.Sprintf("LEVEL(0x%X)", uint16(l))
	}
}

// ParseLevel converts a level name to a Level. It accepts the String forms
// case-insensitively, plus the common aliases "warning" and "err".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "fatal":
		return LevelFatal, nil
	case "error", "err":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}
