package ir1

import (
	"bfcc/diag"
	"bfcc/token"
)

// Parse consumes the full token stream and builds IR1 directly, fusing
// adjacent same-kind operations and recognizing the clear-cell idiom as
// it goes. It never builds an intermediate syntax tree.
func Parse(tokens []token.Token) (Program, error) {
	p := &parser{toks: tokens}
	body, closed, err := p.parseInstructions()
	if err != nil {
		return Program{}, err
	}
	if closed {
		return Program{}, p.errorAt(p.pos-1, "unmatched ']'")
	}
	return Program{Instrs: body}, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) errorAt(i int, msg string) *diag.ParseError {
	offset := 0
	if i >= 0 && i < len(p.toks) {
		offset = p.toks[i].Offset
	} else if len(p.toks) > 0 {
		offset = p.toks[len(p.toks)-1].Offset + 1
	}
	return &diag.ParseError{Offset: offset, Message: msg}
}

// parseInstructions parses a run of instructions, fusing as it goes, and
// reports whether it stopped because of a closing ']' (true) or EOF
// (false).
func (p *parser) parseInstructions() ([]Instruction, bool, error) {
	var out []Instruction
	var pending Instruction
	havePending := false

	for {
		instr, closed, ok, err := p.parseInstruction()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			if havePending {
				out = append(out, withBoundsCheck(pending)...)
			}
			return out, closed, nil
		}

		if havePending {
			if merged, did := merge(pending, instr); did {
				pending = merged
				continue
			}
			out = append(out, withBoundsCheck(pending)...)
		}
		pending = instr
		havePending = true
	}
}

// parseInstruction consumes one token's worth of instruction (recursing
// into nested loops). ok is false at end of input; closed is true when
// the token consumed was a ']'.
func (p *parser) parseInstruction() (instr Instruction, closed bool, ok bool, err error) {
	if p.pos >= len(p.toks) {
		return nil, false, false, nil
	}
	tok := p.toks[p.pos]
	p.pos++

	switch tok.Kind {
	case token.Plus:
		return Modify{Offset: 0, Delta: 1}, false, true, nil
	case token.Minus:
		return Modify{Offset: 0, Delta: -1}, false, true, nil
	case token.Next:
		return Move{Delta: 1}, false, true, nil
	case token.Previous:
		return Move{Delta: -1}, false, true, nil
	case token.Dot:
		return Output{Offset: 0}, false, true, nil
	case token.Comma:
		return Input{Offset: 0}, false, true, nil
	case token.Close:
		return nil, true, false, nil
	case token.Open:
		body, closedInner, err := p.parseInstructions()
		if err != nil {
			return nil, false, false, err
		}
		if !closedInner {
			return nil, false, false, p.errorAt(p.pos, "unterminated '['")
		}
		return collapseLoop(body), false, true, nil
	default:
		invariant(false, "unknown token kind %v", tok.Kind)
		return nil, false, false, nil
	}
}

// withBoundsCheck prefixes instr with the bounds check its cell access
// requires: every cell-accessing instruction is preceded by a check of
// the single cell it touches at its own position (offset 0, before
// normalizePointerMovement folds Move into surrounding offsets).
func withBoundsCheck(instr Instruction) []Instruction {
	if !accessesCell(instr) {
		return []Instruction{instr}
	}
	return []Instruction{BoundsCheck{Range: BoundsRange{Start: 0, Length: 1}}, instr}
}

func accessesCell(i Instruction) bool {
	switch i.(type) {
	case Modify, Output, Input, Set, Loop, If, AddMultiple:
		return true
	case Move, BoundsCheck:
		return false
	default:
		invariant(false, "unknown instruction %T", i)
		return false
	}
}

// collapseLoop recognizes the `[-]`/`[+]` clear idiom and otherwise
// appends the condition-recheck bounds check used at the foot of the
// loop body.
func collapseLoop(body []Instruction) Instruction {
	// a lone Modify always arrives prefixed with the bounds check
	// withBoundsCheck adds for any cell access, so the idiom's shape on
	// the wire is [BoundsCheck, Modify], not a bare Modify.
	if len(body) == 2 {
		if _, ok := body[0].(BoundsCheck); ok {
			if m, ok := body[1].(Modify); ok && m.Offset == 0 && m.Delta%2 != 0 {
				return Set{Offset: 0, Value: 0}
			}
		}
	}
	full := append(append([]Instruction{}, body...), BoundsCheck{Range: BoundsRange{Start: 0, Length: 1}})
	return Loop{Balanced: false, Cond: 0, Body: full}
}

// merge attempts to fuse two adjacent instructions of the same kind
// into one, returning ok=false when no fusion rule applies.
func merge(left, right Instruction) (Instruction, bool) {
	switch l := left.(type) {
	case Modify:
		if r, ok := right.(Modify); ok && r.Offset == l.Offset {
			return Modify{Offset: l.Offset, Delta: l.Delta + r.Delta}, true
		}
	case Move:
		if r, ok := right.(Move); ok {
			return Move{Delta: l.Delta + r.Delta}, true
		}
	case Set:
		if r, ok := right.(Modify); ok && r.Offset == l.Offset {
			return Set{Offset: l.Offset, Value: l.Value + uint8(r.Delta)}, true
		}
	}
	return nil, false
}
