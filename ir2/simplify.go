package ir2

// removeIdentityMuls rewrites `x * 1` and `1 * x` to a bare leaf
// assignment.
func removeIdentityMuls(m *Module) bool {
	changed := false
	for bi := range m.Blocks {
		body := m.Blocks[bi].Body
		for ii := range body {
			inst := &body[ii]
			if inst.Kind != Assign || inst.Expr.Kind != ExprBinary || inst.Expr.Bin != Mul {
				continue
			}
			a, b := inst.Expr.A, inst.Expr.B
			switch {
			case a.Kind == LeafConst && a.Const.IsMultiplicativeIdentity():
				inst.Expr = LeafOf(b)
				changed = true
			case b.Kind == LeafConst && b.Const.IsMultiplicativeIdentity():
				inst.Expr = LeafOf(a)
				changed = true
			}
		}
	}
	return changed
}

// removeNegatingMuls rewrites `x * -1` and `-1 * x` to a Neg.
func removeNegatingMuls(m *Module) bool {
	changed := false
	for bi := range m.Blocks {
		body := m.Blocks[bi].Body
		for ii := range body {
			inst := &body[ii]
			if inst.Kind != Assign || inst.Expr.Kind != ExprBinary || inst.Expr.Bin != Mul {
				continue
			}
			a, b := inst.Expr.A, inst.Expr.B
			switch {
			case a.Kind == LeafConst && a.Const.IsMultiplicativeNegation():
				inst.Expr = UnaryOf(Neg, b)
				changed = true
			case b.Kind == LeafConst && b.Const.IsMultiplicativeNegation():
				inst.Expr = UnaryOf(Neg, a)
				changed = true
			}
		}
	}
	return changed
}
