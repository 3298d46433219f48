package ir2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bfcc/ir2"
)

func i8(v uint8) ir2.Value   { return ir2.Value{Kind: ir2.I8, I8: v} }
func i64(v uint64) ir2.Value { return ir2.Value{Kind: ir2.I64, I64: v} }

func TestValueBinaryOpWrapsI8(t *testing.T) {
	got := i8(250).BinaryOp(ir2.Add, i8(10))
	assert.Equal(t, i8(4), got)

	got = i8(0).BinaryOp(ir2.Sub, i8(1))
	assert.Equal(t, i8(255), got)
}

func TestValueBinaryOpI64Arithmetic(t *testing.T) {
	assert.Equal(t, i64(30000), i64(30000).BinaryOp(ir2.Add, i64(0)))
	assert.Equal(t, i64(7), i64(3).BinaryOp(ir2.Mul, i64(0)).BinaryOp(ir2.Add, i64(7)))
}

func TestValueSignedDivisionUsesTwosComplement(t *testing.T) {
	neg1 := i8(0xFF) // -1 as i8
	got := i8(10).BinaryOp(ir2.IDiv, neg1)
	assert.Equal(t, i8(0xF6), got) // 10 / -1 == -10 == 0xF6
}

func TestValueUnaryNegI8(t *testing.T) {
	got := i8(1).UnaryOp(ir2.Neg)
	assert.Equal(t, i8(0xFF), got)
}

func TestValueTestOpEquality(t *testing.T) {
	eq := i8(5).TestOp(ir2.Equal, i8(5))
	assert.Equal(t, ir2.Value{Kind: ir2.I1, I1: true}, eq)

	ne := i8(5).TestOp(ir2.NotEqual, i8(5))
	assert.Equal(t, ir2.Value{Kind: ir2.I1, I1: false}, ne)
}

func TestValueMultiplicativeIdentityAndNegation(t *testing.T) {
	assert.True(t, i8(1).IsMultiplicativeIdentity())
	assert.False(t, i8(2).IsMultiplicativeIdentity())
	assert.True(t, i8(0xFF).IsMultiplicativeNegation())
	assert.True(t, i64(0xFFFFFFFFFFFFFFFF).IsMultiplicativeNegation())
	assert.False(t, i64(1).IsMultiplicativeNegation())
}

func TestValueToLeafRoundTrips(t *testing.T) {
	v := i8(42)
	leaf := v.ToLeaf()
	assert.Equal(t, ir2.LeafConst, leaf.Kind)
	assert.Equal(t, v, leaf.Const)
}
