package ir2

import "fmt"

// LeafKind distinguishes the two forms a LeafExpr can take.
type LeafKind int

const (
	LeafRegister LeafKind = iota
	LeafConst
)

// LeafExpr is either a register reference or a typed constant. It is a
// plain comparable struct, not an interface, specifically so Expr (built
// from two LeafExprs) can serve directly as a map key in the local
// common-subexpression pass.
type LeafExpr struct {
	Kind     LeafKind
	Register RegisterID
	Const    Value
}

// Reg builds a register leaf.
func Reg(r RegisterID) LeafExpr {
	return LeafExpr{Kind: LeafRegister, Register: r}
}

// ConstI1, ConstI8, ConstI64 build typed constant leaves.
func ConstI1(v bool) LeafExpr { return LeafExpr{Kind: LeafConst, Const: Value{Kind: I1, I1: v}} }
func ConstI8(v uint8) LeafExpr { return LeafExpr{Kind: LeafConst, Const: Value{Kind: I8, I8: v}} }
func ConstI64(v uint64) LeafExpr { return LeafExpr{Kind: LeafConst, Const: Value{Kind: I64, I64: v}} }

// ExprType resolves a leaf's type, consulting the module's register
// arena for Register leaves.
func (l LeafExpr) ExprType(m *Module) Type {
	if l.Kind == LeafConst {
		return l.Const.Kind
	}
	return m.RegisterType(l.Register)
}

func (l LeafExpr) String() string {
	if l.Kind == LeafConst {
		return l.Const.String()
	}
	return l.Register.String()
}

// ExprKind distinguishes the four shapes an Expr assigned to a register
// can take.
type ExprKind int

const (
	ExprLeaf ExprKind = iota
	ExprBinary
	ExprUnary
	ExprTest
)

// Expr is the right-hand side of an Assign instruction. Like LeafExpr it
// is a plain comparable struct so it can key the CSE map directly.
type Expr struct {
	Kind ExprKind
	Leaf LeafExpr // ExprLeaf

	A, B LeafExpr // ExprBinary, ExprTest: A op B. ExprUnary: op A.
	Bin  BinaryOp // ExprBinary
	Un   UnaryOp  // ExprUnary
	Test TestOp   // ExprTest
}

func LeafOf(l LeafExpr) Expr { return Expr{Kind: ExprLeaf, Leaf: l} }
func BinaryOf(a LeafExpr, op BinaryOp, b LeafExpr) Expr {
	return Expr{Kind: ExprBinary, A: a, Bin: op, B: b}
}
func UnaryOf(op UnaryOp, a LeafExpr) Expr { return Expr{Kind: ExprUnary, A: a, Un: op} }
func TestOf(a LeafExpr, op TestOp, b LeafExpr) Expr {
	return Expr{Kind: ExprTest, A: a, Test: op, B: b}
}

// IsLeaf reports whether the expression is already a bare leaf.
func (e Expr) IsLeaf() bool { return e.Kind == ExprLeaf }

// ExprType resolves the type the expression produces.
func (e Expr) ExprType(m *Module) Type {
	switch e.Kind {
	case ExprLeaf:
		return e.Leaf.ExprType(m)
	case ExprTest:
		return I1
	default:
		return e.A.ExprType(m)
	}
}

// EvalConst evaluates the expression if every operand is a constant.
func (e Expr) EvalConst() (Value, bool) {
	switch e.Kind {
	case ExprLeaf:
		if e.Leaf.Kind != LeafConst {
			return Value{}, false
		}
		return e.Leaf.Const, true
	case ExprBinary:
		if e.A.Kind != LeafConst || e.B.Kind != LeafConst {
			return Value{}, false
		}
		return e.A.Const.BinaryOp(e.Bin, e.B.Const), true
	case ExprUnary:
		if e.A.Kind != LeafConst {
			return Value{}, false
		}
		return e.A.Const.UnaryOp(e.Un), true
	case ExprTest:
		if e.A.Kind != LeafConst || e.B.Kind != LeafConst {
			return Value{}, false
		}
		return e.A.Const.TestOp(e.Test, e.B.Const), true
	default:
		panic(fmt.Sprintf("unknown expr kind %v", e.Kind))
	}
}

func (e Expr) String() string {
	switch e.Kind {
	case ExprLeaf:
		return e.Leaf.String()
	case ExprBinary:
		return fmt.Sprintf("%s %s, %s", e.Bin, e.A, e.B)
	case ExprUnary:
		return fmt.Sprintf("%s %s", e.Un, e.A)
	case ExprTest:
		return fmt.Sprintf("%s %s, %s", e.Test, e.A, e.B)
	default:
		return "?"
	}
}
