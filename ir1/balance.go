package ir1

// markBalancedBlocks computes, post-order, whether each Loop/If leaves
// the pointer where it found it. The result is conservative: it must
// never mark an actually-unbalanced block balanced, but may
// under-approximate.
func markBalancedBlocks(p *Program) {
	p.Instrs = markBalancedRec(p.Instrs)
}

func markBalancedRec(instrs []Instruction) []Instruction {
	out := make([]Instruction, len(instrs))
	for i, inst := range instrs {
		switch v := inst.(type) {
		case Loop:
			v.Body = markBalancedRec(v.Body)
			v.Balanced = !anyMovesPointer(v.Body)
			out[i] = v
		case If:
			v.Body = markBalancedRec(v.Body)
			v.Balanced = !anyMovesPointer(v.Body)
			out[i] = v
		default:
			out[i] = inst
		}
	}
	return out
}

func anyMovesPointer(body []Instruction) bool {
	for _, inst := range body {
		if MovesPointer(inst) {
			return true
		}
	}
	return false
}
