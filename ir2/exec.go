package ir2

import (
	"fmt"
	"io"
)

// Exec is the stack interpreter for IR2: it drives block-to-block
// control flow via an explicit Jump/Halt action rather than recursion,
// since IR2 blocks end in a terminator instead of nesting.
type Exec struct {
	cells     []byte
	registers []Value
	out       io.Writer
	in        io.Reader
}

// NewExec builds an interpreter with empty tape and register file.
// tapeHint pre-reserves tape capacity to avoid repeated reallocation on
// the first grow; it does not change the tape's logical length, which
// remains 0 until a BoundsCheck or a cell access grows it.
func NewExec(out io.Writer, in io.Reader, tapeHint int) *Exec {
	return &Exec{out: out, in: in, cells: make([]byte, 0, tapeHint)}
}

type action struct {
	halt bool
	to   BlockID
	args []Value
}

// Run executes a module from its entry block until a block falls off
// the end of its body without a terminator (treated as halt).
func (e *Exec) Run(m *Module) error {
	e.registers = make([]Value, len(m.Registers))
	act := action{to: m.Entry}

	for {
		if act.halt {
			return nil
		}
		next, err := e.execBlock(m, m.Block(act.to), act.args)
		if err != nil {
			return err
		}
		act = next
	}
}

func (e *Exec) execBlock(m *Module, b *Block, args []Value) (action, error) {
	for i, p := range b.Parameters {
		if i < len(args) {
			e.registers[p] = args[i]
		}
	}

	for _, inst := range b.Body {
		switch inst.Kind {
		case Nop:
		case LoadCell:
			idx := e.evalLeaf(inst.Index).I64
			e.registers[inst.Target] = Value{Kind: I8, I8: e.cell(idx)}
		case StoreCell:
			idx := e.evalLeaf(inst.Index).I64
			e.setCell(idx, e.evalLeaf(inst.Value).I8)
		case BoundsCheckI:
			end := e.evalLeaf(inst.End).I64
			e.ensure(end)
		case Assign:
			e.registers[inst.Target] = e.evalExpr(m, inst.Expr)
		case Output:
			if _, err := e.out.Write([]byte{e.evalLeaf(inst.Value).I8}); err != nil {
				return action{}, err
			}
		case Input:
			var buf [1]byte
			n, err := e.in.Read(buf[:])
			if err != nil && err != io.EOF {
				return action{}, err
			}
			if n == 0 {
				e.registers[inst.Target] = e.evalLeaf(inst.Default)
			} else {
				e.registers[inst.Target] = Value{Kind: I8, I8: buf[0]}
			}
		case Jump:
			return e.jump(inst.To), nil
		case Branch:
			if e.evalLeaf(inst.Cond).I1 {
				return e.jump(inst.Then), nil
			}
			return e.jump(inst.Else), nil
		default:
			panic(fmt.Sprintf("unknown instruction kind %v", inst.Kind))
		}
	}

	return action{halt: true}, nil
}

func (e *Exec) jump(t TargetBlock) action {
	args := make([]Value, len(t.Args))
	for i, a := range t.Args {
		args[i] = e.evalLeaf(a)
	}
	return action{to: t.ID, args: args}
}

func (e *Exec) cell(idx uint64) byte {
	e.ensure(idx + 1)
	return e.cells[idx]
}

func (e *Exec) setCell(idx uint64, v byte) {
	e.ensure(idx + 1)
	e.cells[idx] = v
}

func (e *Exec) ensure(length uint64) {
	if int(length) <= len(e.cells) {
		return
	}
	if int(length) <= cap(e.cells) {
		e.cells = e.cells[:length]
		return
	}
	grown := make([]byte, length)
	copy(grown, e.cells)
	e.cells = grown
}

func (e *Exec) evalLeaf(l LeafExpr) Value {
	if l.Kind == LeafConst {
		return l.Const
	}
	return e.registers[l.Register]
}

func (e *Exec) evalExpr(m *Module, expr Expr) Value {
	switch expr.Kind {
	case ExprLeaf:
		return e.evalLeaf(expr.Leaf)
	case ExprBinary:
		return e.evalLeaf(expr.A).BinaryOp(expr.Bin, e.evalLeaf(expr.B))
	case ExprUnary:
		return e.evalLeaf(expr.A).UnaryOp(expr.Un)
	case ExprTest:
		return e.evalLeaf(expr.A).TestOp(expr.Test, e.evalLeaf(expr.B))
	default:
		panic(fmt.Sprintf("unknown expr kind %v", expr.Kind))
	}
}
