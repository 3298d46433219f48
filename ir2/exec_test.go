package ir2_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfcc/ir2"
)

func TestExecStraightLineProgram(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	idx := b.Set(ir2.ConstI64(0))
	b.CheckBounds(ir2.ConstI64(0), ir2.ConstI64(1))
	b.StoreCell(ir2.Reg(idx), ir2.ConstI8(65))
	loaded := b.LoadCell(ir2.Reg(idx))
	b.Output(ir2.Reg(loaded))

	var out bytes.Buffer
	exec := ir2.NewExec(&out, strings.NewReader(""), 16)
	require.NoError(t, exec.Run(m))
	assert.Equal(t, "A", out.String())
}

func TestExecBranchTakesTrueTarget(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	then := b.AddBlock()
	els := b.AddBlock()
	join := b.AddBlock()

	b.Branch(ir2.ConstI1(true), ir2.TargetBlock{ID: then}, ir2.TargetBlock{ID: els})

	b.SelectBlock(then)
	b.Output(ir2.ConstI8('T'))
	b.Jump(ir2.TargetBlock{ID: join})

	b.SelectBlock(els)
	b.Output(ir2.ConstI8('F'))
	b.Jump(ir2.TargetBlock{ID: join})

	b.SelectBlock(join)

	var out bytes.Buffer
	exec := ir2.NewExec(&out, strings.NewReader(""), 0)
	require.NoError(t, exec.Run(m))
	assert.Equal(t, "T", out.String())
}

func TestExecJumpPassesBlockArguments(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	target := b.AddBlock()
	b.Jump(ir2.TargetBlock{ID: target, Args: []ir2.LeafExpr{ir2.ConstI8(99)}})

	b.SelectBlock(target)
	p := b.AddParameter(ir2.I8)
	b.Output(ir2.Reg(p))

	var out bytes.Buffer
	exec := ir2.NewExec(&out, strings.NewReader(""), 0)
	require.NoError(t, exec.Run(m))
	assert.Equal(t, string([]byte{99}), out.String())
}

func TestExecInputFallsBackToDefaultAtEOF(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	reg := b.Input(ir2.ConstI8(42))
	b.Output(ir2.Reg(reg))

	var out bytes.Buffer
	exec := ir2.NewExec(&out, strings.NewReader(""), 0)
	require.NoError(t, exec.Run(m))
	assert.Equal(t, string([]byte{42}), out.String())
}

func TestExecBoundsCheckGrowsTape(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	b.CheckBounds(ir2.ConstI64(0), ir2.ConstI64(10))
	b.StoreCell(ir2.ConstI64(9), ir2.ConstI8(7))
	loaded := b.LoadCell(ir2.ConstI64(9))
	b.Output(ir2.Reg(loaded))

	var out bytes.Buffer
	exec := ir2.NewExec(&out, strings.NewReader(""), 0)
	require.NoError(t, exec.Run(m))
	require.Len(t, out.String(), 1)
	assert.Equal(t, byte(7), out.String()[0])
}
