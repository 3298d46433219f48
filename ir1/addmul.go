package ir1

// recogAdditions recognizes the classical copy/multiply loop idiom:
// a Loop that decrements its guard cell by exactly one per iteration
// while adding constant multiples to other cells runs exactly
// cell[base] times, so it is rewritten algebraically into a guarded
// sequence of AddMultiple instructions. Only Loop nodes are visited for
// rewriting and recursed into; an If's body is left untouched by this
// pass even if it contains a nested Loop, since no If nodes exist in the
// tree before this pass runs except ones this same pass has already
// produced.
//
// A loop body coming out of mergeVerifications/removeDeadVerifications
// may still carry BoundsChecks alongside its Modify instructions; those
// are passed through untouched in their original position so every
// access the loop body made remains covered by a check after the
// rewrite.
func recogAdditions(p *Program) {
	for i, inst := range p.Instrs {
		p.Instrs[i] = recogAdditionsInstr(inst)
	}
}

func recogAdditionsInstr(inst Instruction) Instruction {
	loop, ok := inst.(Loop)
	if !ok {
		return inst
	}

	for i, b := range loop.Body {
		loop.Body[i] = recogAdditionsInstr(b)
	}

	var body []Instruction
	decremented := false

	for _, b := range loop.Body {
		switch v := b.(type) {
		case BoundsCheck:
			body = append(body, v)
		case Modify:
			switch {
			case decremented && v.Offset == loop.Cond:
				return loop
			case v.Offset == loop.Cond && v.Delta == -1:
				decremented = true
			default:
				body = append(body, AddMultiple{Target: v.Offset, Base: loop.Cond, Factor: v.Delta})
			}
		default:
			return loop
		}
	}

	if !decremented {
		return loop
	}

	body = append(body, Set{Offset: loop.Cond, Value: 0})
	return If{Balanced: true, Cond: loop.Cond, Body: body}
}
