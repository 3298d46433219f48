// Package ir1 implements the expression-tree intermediate representation:
// its instruction set, the fusing parser that builds it, the fixed
// sequence of tree-rewrite passes that optimize it, a reference
// tree-walking interpreter, and a pretty-printer.
package ir1

import "fmt"

// Program is an ordered sequence of top-level instructions.
type Program struct {
	Instrs []Instruction
}

// Instruction is implemented by every IR1 node. The set is closed; the
// switches in balance.go, verify.go, and elsewhere must stay exhaustive.
type Instruction interface {
	instrNode()
}

// Modify adds Delta to the cell at ptr+Offset, wrapping mod 256.
type Modify struct {
	Offset int
	Delta  int8
}

// Move shifts the data pointer by Delta.
type Move struct {
	Delta int
}

// Output writes the byte at ptr+Offset.
type Output struct {
	Offset int
}

// Input reads one byte into the cell at ptr+Offset.
type Input struct {
	Offset int
}

// Set unconditionally writes Value into the cell at ptr+Offset.
type Set struct {
	Offset int
	Value  uint8
}

// AddMultiple computes cell[Target] += cell[Base] * Factor, wrapping.
type AddMultiple struct {
	Target int
	Base   int
	Factor int8
}

// BoundsRange is a half-open range of cells relative to the pointer at
// the point the check appears: [Start, Start+Length).
type BoundsRange struct {
	Start  int
	Length int
}

// BoundsCheck asserts the covered cells have been materialized on the tape.
type BoundsCheck struct {
	Range BoundsRange
}

// Loop executes Body while cell[Cond] != 0. Balanced is a conservative
// annotation computed by markBalancedBlocks: it may be false when the
// loop is actually balanced but must never be true when it isn't.
type Loop struct {
	Balanced bool
	Cond     int
	Body     []Instruction
}

// If executes Body once if cell[Cond] != 0, with the same Balanced contract
// as Loop.
type If struct {
	Balanced bool
	Cond     int
	Body     []Instruction
}

func (Modify) instrNode()      {}
func (Move) instrNode()        {}
func (Output) instrNode()      {}
func (Input) instrNode()       {}
func (Set) instrNode()         {}
func (AddMultiple) instrNode() {}
func (BoundsCheck) instrNode() {}
func (Loop) instrNode()        {}
func (If) instrNode()          {}

// MovesPointer reports whether executing i can change the data pointer.
// A Loop/If moves the pointer iff it is marked unbalanced; this is the
// single predicate both markBalancedBlocks and mergeVerifications rely on.
func MovesPointer(i Instruction) bool {
	switch v := i.(type) {
	case Move:
		return true
	case Loop:
		return !v.Balanced
	case If:
		return !v.Balanced
	default:
		return false
	}
}

// invariant panics with a formatted message if cond is false. It marks
// conditions the builder or a pass must never violate; a violation is a
// bug in this compiler, not a property of the input program.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
