package ir2

import (
	"fmt"
	"io"
	"strings"
)

// Print renders a Module block by block: "@N(params):" header followed
// by one tab-indented instruction per line.
func Print(w io.Writer, m *Module) {
	for _, b := range m.Blocks {
		printBlock(w, b)
	}
}

func printBlock(w io.Writer, b Block) {
	fmt.Fprint(w, b.ID.String())
	if len(b.Parameters) > 0 {
		fmt.Fprint(w, "(")
		for i, p := range b.Parameters {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprint(w, p.String())
		}
		fmt.Fprint(w, ")")
	}
	fmt.Fprintln(w, ":")

	for _, inst := range b.Body {
		fmt.Fprintf(w, "\t%s\n", inst)
	}
}

// String renders a Module to a string for diagnostics and tests.
func String(m *Module) string {
	var sb strings.Builder
	Print(&sb, m)
	return sb.String()
}
