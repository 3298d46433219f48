package ir2

// Optimize runs IR2's local optimizations to a fixpoint: each sweep can
// expose new opportunities for the others (a folded constant enables identity-mul
// removal, which enables CSE, which enables dead-assignment removal), so
// the whole group repeats until none of them reports a change.
func Optimize(m *Module) {
	changed := true
	for changed {
		changed = false
		changed = localCSE(m) || changed
		changed = removeIdentityMuls(m) || changed
		changed = removeNegatingMuls(m) || changed
		changed = doConstantOperations(m) || changed
		changed = propagateLeafAssigns(m) || changed
		changed = removeDeadAssignments(m) || changed

		removeNops(m)
	}
}
