package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if the given writer supports ANSI color codes.
// It returns false if:
//   - The writer is not a TTY
//   - NO_COLOR or NTC_NO_COLOR is set
//   - TERM is "dumb"
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(_ io.Writer, isTTY bool) bool {
	for _, key := range []string{"NO_COLOR", "NTC_NO_COLOR"} {
		if _, ok := os.LookupEnv(key); ok {
			return false
		}
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
