package ir1

// Optimize runs a fixed sequence of semantics-preserving rewrites, in
// order. Verification merging and dead-check
// removal run twice: once before recogAdditions so the loop bodies it
// inspects carry only the checks that actually survive, and once after
// removeDeadIfStatements, which can expose new adjacent/redundant checks
// by splicing an If's body into its enclosing list.
func Optimize(p *Program) {
	normalizePointerMovement(p)
	removeDead(p)
	markBalancedBlocks(p)
	mergeVerifications(p)
	removeDeadVerifications(p)
	recogAdditions(p)
	removeDeadIfStatements(p)
	mergeVerifications(p)
	removeDeadVerifications(p)
}
