// Package diag holds diagnostics shared across the pipeline: parse
// errors carrying a source position, and the colorized reporting the CLI
// driver uses for them.
package diag

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// ParseError is a fatal error produced while turning tokens into IR1:
// an unmatched ']' or an unterminated '['. Offset is the byte offset in
// the original source the error should point at.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// Report prints err to stderr, coloring parse errors bold red followed by
// a line giving the byte offset, and any other error in plain red text.
func Report(err error) {
	if pe, ok := err.(*ParseError); ok {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: %s\n", pe.Message)
		fmt.Fprintf(os.Stderr, "  at byte offset %d\n", pe.Offset)
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err)
}

// ReportAndExit reports err and terminates the process with a nonzero
// status: a parse error or an interpreter failure is fatal.
func ReportAndExit(err error) {
	Report(err)
	os.Exit(1)
}

// Success prints a green confirmation banner.
func Success(format string, args ...any) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}
