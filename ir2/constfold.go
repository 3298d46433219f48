package ir2

// doConstantOperations folds an Assign whose expression's operands are
// all constant into a bare constant leaf.
func doConstantOperations(m *Module) bool {
	changed := false
	for bi := range m.Blocks {
		body := m.Blocks[bi].Body
		for ii := range body {
			inst := &body[ii]
			if inst.Kind != Assign || inst.Expr.IsLeaf() {
				continue
			}
			if v, ok := inst.Expr.EvalConst(); ok {
				inst.Expr = LeafOf(v.ToLeaf())
				changed = true
			}
		}
	}
	return changed
}
