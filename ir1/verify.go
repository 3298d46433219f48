package ir1

// mergeVerifications coalesces adjacent BoundsChecks within one
// instruction list into a single check covering their union, resetting
// at any pointer-moving instruction or unbalanced Loop/If. A *balanced*
// Loop/If does not reset the accumulator: it may execute zero times, but a check
// outside it still guards addresses relative to the same pointer either
// way.
func mergeVerifications(p *Program) {
	p.Instrs = mergeVerificationsRec(p.Instrs)
}

func mergeVerificationsRec(instrs []Instruction) []Instruction {
	out := make([]Instruction, 0, len(instrs))
	var acc *BoundsRange

	flush := func() {
		if acc != nil {
			out = append(out, BoundsCheck{Range: *acc})
			acc = nil
		}
	}

	for _, inst := range instrs {
		switch v := inst.(type) {
		case BoundsCheck:
			acc = unionRange(acc, v.Range)
		case Loop:
			v.Body = mergeVerificationsRec(v.Body)
			if !v.Balanced {
				flush()
			}
			out = append(out, v)
		case If:
			v.Body = mergeVerificationsRec(v.Body)
			if !v.Balanced {
				flush()
			}
			out = append(out, v)
		default:
			if MovesPointer(inst) {
				flush()
			}
			out = append(out, inst)
		}
	}
	flush()

	return out
}

// removeDeadVerifications drops a BoundsCheck whose range is already
// covered by the widest range verified along the current straight-line
// segment. Tracked state resets at any pointer-moving instruction and
// does not leak across recursion into a nested body.
func removeDeadVerifications(p *Program) {
	p.Instrs = removeDeadVerificationsRec(p.Instrs)
}

func removeDeadVerificationsRec(instrs []Instruction) []Instruction {
	out := make([]Instruction, 0, len(instrs))
	var tracked *BoundsRange

	for _, inst := range instrs {
		switch v := inst.(type) {
		case BoundsCheck:
			if tracked != nil && rangeContains(*tracked, v.Range) {
				continue
			}
			tracked = unionRange(tracked, v.Range)
			out = append(out, v)
			continue
		case Loop:
			v.Body = removeDeadVerificationsRec(v.Body)
			inst = v
		case If:
			v.Body = removeDeadVerificationsRec(v.Body)
			inst = v
		}

		if MovesPointer(inst) {
			tracked = nil
		}
		out = append(out, inst)
	}

	return out
}

func unionRange(acc *BoundsRange, r BoundsRange) *BoundsRange {
	if acc == nil {
		u := r
		return &u
	}
	start := min(acc.Start, r.Start)
	end := max(acc.Start+acc.Length, r.Start+r.Length)
	return &BoundsRange{Start: start, Length: end - start}
}

func rangeContains(outer, inner BoundsRange) bool {
	return inner.Start >= outer.Start && inner.Start+inner.Length <= outer.Start+outer.Length
}
