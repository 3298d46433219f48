package ir2

// removeDeadAssignments turns any Assign whose target is never read by
// another instruction into a Nop. A register used only as a block parameter
// binding still counts as used via the TargetBlock args that supply it.
func removeDeadAssignments(m *Module) bool {
	used := map[RegisterID]bool{}
	for _, blk := range m.Blocks {
		for _, inst := range blk.Body {
			populateUsed(inst, used)
		}
	}

	changed := false
	for bi := range m.Blocks {
		body := m.Blocks[bi].Body
		for ii := range body {
			inst := &body[ii]
			if inst.Kind == Assign && !used[inst.Target] {
				*inst = Instruction{Kind: Nop}
				changed = true
			}
		}
	}
	return changed
}

func populateLeaf(l LeafExpr, used map[RegisterID]bool) {
	if l.Kind == LeafRegister {
		used[l.Register] = true
	}
}

func populateTarget(t TargetBlock, used map[RegisterID]bool) {
	for _, a := range t.Args {
		populateLeaf(a, used)
	}
}

func populateUsed(inst Instruction, used map[RegisterID]bool) {
	switch inst.Kind {
	case LoadCell:
		populateLeaf(inst.Index, used)
	case StoreCell:
		populateLeaf(inst.Index, used)
		populateLeaf(inst.Value, used)
	case BoundsCheckI:
		populateLeaf(inst.Start, used)
		populateLeaf(inst.End, used)
	case Assign:
		switch inst.Expr.Kind {
		case ExprLeaf:
			populateLeaf(inst.Expr.Leaf, used)
		case ExprBinary, ExprTest:
			populateLeaf(inst.Expr.A, used)
			populateLeaf(inst.Expr.B, used)
		case ExprUnary:
			populateLeaf(inst.Expr.A, used)
		}
	case Output:
		populateLeaf(inst.Value, used)
	case Input:
		populateLeaf(inst.Default, used)
	case Jump:
		populateTarget(inst.To, used)
	case Branch:
		populateLeaf(inst.Cond, used)
		populateTarget(inst.Then, used)
		populateTarget(inst.Else, used)
	}
}

// removeNops compacts every block's body by dropping Nop instructions.
func removeNops(m *Module) {
	for bi := range m.Blocks {
		body := m.Blocks[bi].Body
		out := body[:0:0]
		for _, inst := range body {
			if inst.Kind != Nop {
				out = append(out, inst)
			}
		}
		m.Blocks[bi].Body = out
	}
}
