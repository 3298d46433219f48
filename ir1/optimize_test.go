package ir1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfcc/ir1"
)

func parse(t *testing.T, src string) ir1.Program {
	t.Helper()
	prog, err := ir1.Parse(lex(t, src))
	require.NoError(t, err)
	return prog
}

// countLoops reports how many Loop nodes survive anywhere in the tree,
// used by the scenarios below that require recogAdditions to have
// eliminated every copy loop.
func countLoops(instrs []ir1.Instruction) int {
	n := 0
	for _, inst := range instrs {
		switch v := inst.(type) {
		case ir1.Loop:
			n++
			n += countLoops(v.Body)
		case ir1.If:
			n += countLoops(v.Body)
		}
	}
	return n
}

func TestOptimizeRecognizesCopyLoop(t *testing.T) {
	// "[->+<]" is the canonical single-cell copy/move idiom.
	prog := parse(t, "[->+<]")
	ir1.Optimize(&prog)

	assert.Equal(t, 0, countLoops(prog.Instrs))

	var ifCount int
	for _, inst := range prog.Instrs {
		if _, ok := inst.(ir1.If); ok {
			ifCount++
		}
	}
	assert.Equal(t, 0, ifCount, "the If produced for the copy loop should be inlined by removeDeadIfStatements")
}

func TestOptimizeRecognizesMultiplyLoop(t *testing.T) {
	// "+++[>++<-]" seeds cell 0 to 3, then adds twice that into cell 1.
	prog := parse(t, "+++[>++<-]")
	ir1.Optimize(&prog)

	assert.Equal(t, 0, countLoops(prog.Instrs))
}

func TestOptimizeClearIdiomNeverBecomesLoop(t *testing.T) {
	prog := parse(t, "[-]")
	ir1.Optimize(&prog)

	assert.Equal(t, 0, countLoops(prog.Instrs))
	var sawSet bool
	for _, inst := range prog.Instrs {
		if s, ok := inst.(ir1.Set); ok {
			sawSet = true
			assert.Equal(t, uint8(0), s.Value)
		}
	}
	assert.True(t, sawSet)
}

func TestOptimizeNonHaltingLoopSurvives(t *testing.T) {
	// "+[]" increments then loops forever; there's nothing to collapse.
	prog := parse(t, "+[]")
	ir1.Optimize(&prog)

	assert.Equal(t, 1, countLoops(prog.Instrs))
}

func TestOptimizeIsIdempotent(t *testing.T) {
	for _, src := range []string{
		"[->+<]", "+++[>++<-]", "[-]", "+[]", "++++++++[>++++++++<-]>+.",
	} {
		prog := parse(t, src)
		ir1.Optimize(&prog)
		once := ir1.String(prog)

		ir1.Optimize(&prog)
		twice := ir1.String(prog)

		assert.Equal(t, once, twice, "optimize should be idempotent for %q", src)
	}
}

func TestNormalizePointerMovementMergesAcrossBalancedConstructs(t *testing.T) {
	// ">[-]>": the parser turns "[-]" into a Set, so normalizePointerMovement
	// folds both Moves into the Set's offset and appends a single net Move
	// at the end of the list.
	prog := parse(t, ">[-]>")
	ir1.Optimize(&prog)

	moves := 0
	for _, inst := range prog.Instrs {
		if m, ok := inst.(ir1.Move); ok {
			moves++
			assert.Equal(t, 2, m.Delta)
		}
	}
	assert.Equal(t, 1, moves)
}
