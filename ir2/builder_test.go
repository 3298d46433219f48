package ir2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfcc/ir2"
)

func TestBuilderLoadStoreRoundTrip(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	idx := b.Set(ir2.ConstI64(0))
	loaded := b.LoadCell(ir2.Reg(idx))
	assert.Equal(t, ir2.I8, m.RegisterType(loaded))

	b.StoreCell(ir2.Reg(idx), ir2.ConstI8(7))

	blk := m.Block(m.Entry)
	require.Len(t, blk.Body, 3)
	assert.Equal(t, ir2.LoadCell, blk.Body[1].Kind)
	assert.Equal(t, ir2.StoreCell, blk.Body[2].Kind)
}

func TestBuilderLoadCellPanicsOnNonI64Index(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	bad := b.Set(ir2.ConstI8(0))
	assert.Panics(t, func() {
		b.LoadCell(ir2.Reg(bad))
	})
}

func TestBuilderBinopRequiresMatchingTypes(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	assert.Panics(t, func() {
		b.Add(ir2.ConstI8(1), ir2.ConstI64(1))
	})
}

func TestBuilderBranchRequiresI1Condition(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	then := b.AddBlock()
	els := b.AddBlock()
	assert.Panics(t, func() {
		b.Branch(ir2.ConstI8(1), ir2.TargetBlock{ID: then}, ir2.TargetBlock{ID: els})
	})
}

func TestBuilderAddParameterBindsToSelectedBlock(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	other := b.AddBlock()
	b.SelectBlock(other)
	p := b.AddParameter(ir2.I64)

	assert.Equal(t, []ir2.RegisterID{p}, m.Block(other).Parameters)
	assert.Equal(t, ir2.I64, m.RegisterType(p))
}

func TestBuilderOutputRequiresI8Value(t *testing.T) {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)

	assert.Panics(t, func() {
		b.Output(ir2.ConstI64(1))
	})
}
