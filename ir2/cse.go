package ir2

// localCSE replaces a non-leaf expression with a reference to an earlier
// register already holding the identical expression, scoped to a single
// block. Because Expr is a plain comparable struct it can key the map
// directly.
func localCSE(m *Module) bool {
	changed := false
	seen := map[Expr]RegisterID{}

	for bi := range m.Blocks {
		for k := range seen {
			delete(seen, k)
		}
		body := m.Blocks[bi].Body
		for ii := range body {
			inst := &body[ii]
			if inst.Kind != Assign {
				continue
			}
			if inst.Expr.IsLeaf() {
				continue
			}
			if reg, ok := seen[inst.Expr]; ok {
				inst.Expr = LeafOf(Reg(reg))
				changed = true
				continue
			}
			seen[inst.Expr] = inst.Target
		}
	}

	return changed
}
