// Package token defines the eight-symbol alphabet the tokenizer produces
// and the byte-level lexer that produces it.
package token

import "fmt"

// Kind identifies one of the eight source-language operators.
type Kind int

const (
	Plus Kind = iota
	Minus
	Next
	Previous
	Dot
	Comma
	Open
	Close
)

func (k Kind) String() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Next:
		return ">"
	case Previous:
		return "<"
	case Dot:
		return "."
	case Comma:
		return ","
	case Open:
		return "["
	case Close:
		return "]"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one lexed operator together with the byte offset it came from,
// used only for diagnostics (position reporting on parse errors).
type Token struct {
	Kind   Kind
	Offset int
}
