// Package errors renders user-facing errors and handles fatal exits for the
// CLI entry point. Session-level errors are reported inline by the loop;
// these helpers are for failures the program cannot continue past.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/focustrack/internal/logger"
)

// Format renders err with the "Error: " prefix used on stderr.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Fatal logs err, reports it on stderr, and exits with code 1. A nil err is
// a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Fatal error", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
