package ir2

import "fmt"

// RegisterID names a register in a Module's arena. Registers are
// single-assignment: a well-formed Module assigns each exactly once,
// either as a block parameter or as the target of one Assign/LoadCell/
// Input instruction.
type RegisterID int

func (r RegisterID) String() string {
	return fmt.Sprintf("%%%d", int(r))
}

// Register pairs an ID with its declared type, as tracked in a Module's
// register arena.
type Register struct {
	ID   RegisterID
	Type Type
}
