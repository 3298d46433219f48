package ir1

import (
	"fmt"
	"io"
	"strings"
)

// Print renders a Program as an indented tree using a glyph style
// (├──/└──), writing through an io.Writer.
func Print(w io.Writer, p Program) {
	printList(w, "", p.Instrs)
}

func printList(w io.Writer, prefix string, instrs []Instruction) {
	for i, inst := range instrs {
		last := i == len(instrs)-1
		glyph := "├── "
		childPrefix := prefix + "│   "
		if last {
			glyph = "└── "
			childPrefix = prefix + "    "
		}
		printNode(w, prefix, glyph, childPrefix, inst)
	}
}

func printNode(w io.Writer, prefix, glyph, childPrefix string, inst Instruction) {
	switch v := inst.(type) {
	case Modify:
		fmt.Fprintf(w, "%s%sModify(offset=%d, delta=%d)\n", prefix, glyph, v.Offset, v.Delta)
	case Move:
		fmt.Fprintf(w, "%s%sMove(%d)\n", prefix, glyph, v.Delta)
	case Output:
		fmt.Fprintf(w, "%s%sOutput(offset=%d)\n", prefix, glyph, v.Offset)
	case Input:
		fmt.Fprintf(w, "%s%sInput(offset=%d)\n", prefix, glyph, v.Offset)
	case Set:
		fmt.Fprintf(w, "%s%sSet(offset=%d, value=%d)\n", prefix, glyph, v.Offset, v.Value)
	case AddMultiple:
		fmt.Fprintf(w, "%s%sAddMultiple(target=%d, base=%d, factor=%d)\n", prefix, glyph, v.Target, v.Base, v.Factor)
	case BoundsCheck:
		fmt.Fprintf(w, "%s%sBoundsCheck(start=%d, length=%d)\n", prefix, glyph, v.Range.Start, v.Range.Length)
	case Loop:
		fmt.Fprintf(w, "%s%sLoop(cond=%d, balanced=%t)\n", prefix, glyph, v.Cond, v.Balanced)
		printList(w, childPrefix, v.Body)
	case If:
		fmt.Fprintf(w, "%s%sIf(cond=%d, balanced=%t)\n", prefix, glyph, v.Cond, v.Balanced)
		printList(w, childPrefix, v.Body)
	default:
		invariant(false, "unknown instruction %T", inst)
	}
}

// String renders a Program to a string; convenience for diagnostics and
// tests that compare dumps directly.
func String(p Program) string {
	var sb strings.Builder
	Print(&sb, p)
	return sb.String()
}
