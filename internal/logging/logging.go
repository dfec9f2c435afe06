package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the public logger instance accessible from all packages
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Initialize sets up the logger. Debug output goes to w when verbose is set
// or RHQ_DEBUG=1; otherwise only warnings and errors are written.
func Initialize(w io.Writer, verbose bool) {
	if os.Getenv("RHQ_DEBUG") == "1" {
		verbose = true
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
