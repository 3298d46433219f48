package ir1

// removeDeadIfStatements inlines an If whose body cannot observe whether
// its guard actually held: every instruction in the body either only
// modifies other cells in a way that no-ops when cell[cond] is zero
// (AddMultiple with that base) or resets cell[cond] to zero outright, or
// is a BoundsCheck, which never reads cell values at all. Such a body
// runs with identical effect whether or not the guard is entered, so the
// conditional is dropped and its body spliced in unconditionally.
// Unlike recogAdditions this recurses into both Loop and
// If bodies: by this point in the pipeline an If always comes from a
// prior recogAdditions rewrite, never from source syntax.
func removeDeadIfStatements(p *Program) {
	p.Instrs = removeDeadIfRec(p.Instrs)
}

func removeDeadIfRec(instrs []Instruction) []Instruction {
	out := make([]Instruction, 0, len(instrs))

	for _, inst := range instrs {
		switch v := inst.(type) {
		case Loop:
			v.Body = removeDeadIfRec(v.Body)
			out = append(out, v)
		case If:
			v.Body = removeDeadIfRec(v.Body)
			if ifAlwaysSafe(v) {
				out = append(out, v.Body...)
			} else {
				out = append(out, v)
			}
		default:
			out = append(out, inst)
		}
	}

	return out
}

func ifAlwaysSafe(v If) bool {
	for _, b := range v.Body {
		switch bv := b.(type) {
		case AddMultiple:
			if bv.Base != v.Cond {
				return false
			}
		case Set:
			if bv.Offset != v.Cond || bv.Value != 0 {
				return false
			}
		case BoundsCheck:
			// always safe, doesn't read cell values
		default:
			return false
		}
	}
	return true
}
