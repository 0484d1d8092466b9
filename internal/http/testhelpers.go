package httpx

import (
	"io"
	"log/slog"
)

// discardLogger returns a logger whose output goes nowhere. Tests use it so
// middleware under test does not spam the test output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
