package ir2

// propagateLeafAssigns replaces every use of a register assigned a bare
// leaf with that leaf directly, then leaves the now-unused assignment for
// removeDeadAssignments to clean up.
func propagateLeafAssigns(m *Module) bool {
	repl := map[RegisterID]LeafExpr{}
	for _, blk := range m.Blocks {
		for _, inst := range blk.Body {
			if inst.Kind == Assign && inst.Expr.IsLeaf() {
				repl[inst.Target] = inst.Expr.Leaf
			}
		}
	}

	changed := false
	for bi := range m.Blocks {
		body := m.Blocks[bi].Body
		for ii := range body {
			if replaceUsages(&body[ii], repl) {
				changed = true
			}
		}
	}
	return changed
}

func replaceLeaf(l *LeafExpr, repl map[RegisterID]LeafExpr) bool {
	if l.Kind != LeafRegister {
		return false
	}
	if r, ok := repl[l.Register]; ok {
		*l = r
		return true
	}
	return false
}

func replaceExpr(e *Expr, repl map[RegisterID]LeafExpr) bool {
	changed := false
	switch e.Kind {
	case ExprLeaf:
		changed = replaceLeaf(&e.Leaf, repl) || changed
	case ExprBinary, ExprTest:
		changed = replaceLeaf(&e.A, repl) || changed
		changed = replaceLeaf(&e.B, repl) || changed
	case ExprUnary:
		changed = replaceLeaf(&e.A, repl) || changed
	}
	return changed
}

func replaceTarget(t *TargetBlock, repl map[RegisterID]LeafExpr) bool {
	changed := false
	for i := range t.Args {
		changed = replaceLeaf(&t.Args[i], repl) || changed
	}
	return changed
}

// replaceUsages rewrites every LeafExpr operand inst reads. It never
// rewrites the register an Assign/LoadCell/Input instruction itself
// defines.
func replaceUsages(inst *Instruction, repl map[RegisterID]LeafExpr) bool {
	changed := false
	switch inst.Kind {
	case LoadCell:
		changed = replaceLeaf(&inst.Index, repl) || changed
	case StoreCell:
		changed = replaceLeaf(&inst.Index, repl) || changed
		changed = replaceLeaf(&inst.Value, repl) || changed
	case BoundsCheckI:
		changed = replaceLeaf(&inst.Start, repl) || changed
		changed = replaceLeaf(&inst.End, repl) || changed
	case Assign:
		changed = replaceExpr(&inst.Expr, repl) || changed
	case Output:
		changed = replaceLeaf(&inst.Value, repl) || changed
	case Input:
		changed = replaceLeaf(&inst.Default, repl) || changed
	case Jump:
		changed = replaceTarget(&inst.To, repl) || changed
	case Branch:
		changed = replaceLeaf(&inst.Cond, repl) || changed
		changed = replaceTarget(&inst.Then, repl) || changed
		changed = replaceTarget(&inst.Else, repl) || changed
	}
	return changed
}
