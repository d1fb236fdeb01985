// Package log builds the hclog loggers used throughout the kernel. Loggers
// are constructed per kernel instance and threaded through options; there is
// no package-level logger.
package log

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// DefaultName is the root logger name.
const DefaultName = "batchos"

// New returns a logger writing to w at the supplied level ("trace", "debug",
// "info", "warn", "error"). Unknown levels fall back to info. Setting the
// TRACE environment variable forces trace level.
func New(w io.Writer, level string) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	if str := os.Getenv("TRACE"); str != "" {
		lvl = hclog.Trace
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:            DefaultName,
		Level:           lvl,
		Output:          w,
		DisableTime:     true,
		IncludeLocation: false,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l hclog.Logger) hclog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
