package codegen

import (
	"bfcc/ir1"
	"bfcc/ir2"
)

// Lower translates a fully-optimized IR1 program into an IR2 module,
// laying out header/body/end blocks per Loop/If with a caching context
// layered on top of every cell access.
func Lower(p ir1.Program) *ir2.Module {
	m := ir2.NewModule()
	b := ir2.NewBuilder(m, m.Entry)
	index := b.Set(ir2.ConstI64(0))
	ctx := newCacheContext(index)

	l := &lowering{b: b, ctx: ctx}
	l.genList(p.Instrs)
	ctx.spillValues(b)

	return m
}

type lowering struct {
	b   *ir2.Builder
	ctx *cacheContext
}

func (l *lowering) genList(instrs []ir1.Instruction) {
	for _, inst := range instrs {
		l.genInstruction(inst)
	}
}

func (l *lowering) genInstruction(inst ir1.Instruction) {
	switch v := inst.(type) {
	case ir1.Modify:
		old := l.ctx.cellValue(l.b, v.Offset)
		n := l.b.Add(old, ir2.ConstI8(uint8(v.Delta)))
		l.ctx.storeCellValue(v.Offset, ir2.Reg(n))
	case ir1.Move:
		l.ctx.move(l.b, v.Delta)
	case ir1.Output:
		val := l.ctx.cellValue(l.b, v.Offset)
		l.b.Output(val)
	case ir1.Input:
		def := l.ctx.cellValue(l.b, v.Offset)
		reg := l.b.Input(def)
		l.ctx.storeCellValue(v.Offset, ir2.Reg(reg))
	case ir1.Set:
		l.ctx.storeCellValue(v.Offset, ir2.ConstI8(v.Value))
	case ir1.AddMultiple:
		target := l.ctx.cellValue(l.b, v.Target)
		base := l.ctx.cellValue(l.b, v.Base)
		addend := l.b.Mul(base, ir2.ConstI8(uint8(v.Factor)))
		total := l.b.Add(target, ir2.Reg(addend))
		l.ctx.storeCellValue(v.Target, ir2.Reg(total))
	case ir1.BoundsCheck:
		start := l.ctx.getIndexReg(l.b, v.Range.Start)
		end := l.ctx.getIndexReg(l.b, v.Range.Start+v.Range.Length)
		l.b.CheckBounds(ir2.Reg(start), ir2.Reg(end))
	case ir1.Loop:
		l.genLoop(v)
	case ir1.If:
		l.genIf(v)
	default:
		panic("codegen: unknown ir1 instruction")
	}
}

func (l *lowering) testCondNotZero(offset int) ir2.LeafExpr {
	v := l.ctx.cellValue(l.b, offset)
	reg := l.b.TestOp(ir2.NotEqual, v, ir2.ConstI8(0))
	return ir2.Reg(reg)
}

// genLoop lowers a Loop using separate balanced and unbalanced recipes.
func (l *lowering) genLoop(v ir1.Loop) {
	b := l.b
	if v.Balanced {
		snap := l.ctx.snapshot()

		l.ctx.spillValues(b)
		header := b.AddBlock()
		bodyBlk := b.AddBlock()
		end := b.AddBlock()
		b.Jump(ir2.TargetBlock{ID: header})

		b.SelectBlock(header)
		l.ctx.reset()
		cond := l.testCondNotZero(v.Cond)
		b.Branch(cond, ir2.TargetBlock{ID: bodyBlk}, ir2.TargetBlock{ID: end})

		b.SelectBlock(bodyBlk)
		l.ctx.reset()
		l.genList(v.Body)
		l.ctx.spillValues(b)
		b.Jump(ir2.TargetBlock{ID: header})

		b.SelectBlock(end)
		// the index is unchanged, so the pre-loop address registers are
		// kept; cell values are reloaded, since the body may have
		// written them.
		l.ctx.restore(snap)
		return
	}

	header := b.AddBlock()
	bodyBlk := b.AddBlock()
	end := b.AddBlock()

	l.ctx.spillAll(b)
	initIdx := l.ctx.index
	b.Jump(ir2.TargetBlock{ID: header, Args: []ir2.LeafExpr{ir2.Reg(initIdx)}})

	b.SelectBlock(header)
	l.ctx.reset()
	l.ctx.index = b.AddParameter(ir2.I64)
	cond := l.testCondNotZero(v.Cond)
	l.ctx.spillAll(b)
	headerIdx := l.ctx.index
	b.Branch(cond,
		ir2.TargetBlock{ID: bodyBlk, Args: []ir2.LeafExpr{ir2.Reg(headerIdx)}},
		ir2.TargetBlock{ID: end, Args: []ir2.LeafExpr{ir2.Reg(headerIdx)}})

	b.SelectBlock(bodyBlk)
	l.ctx.reset()
	l.ctx.index = b.AddParameter(ir2.I64)
	l.genList(v.Body)
	l.ctx.spillAll(b)
	bodyIdx := l.ctx.index
	b.Jump(ir2.TargetBlock{ID: header, Args: []ir2.LeafExpr{ir2.Reg(bodyIdx)}})

	b.SelectBlock(end)
	l.ctx.reset()
	l.ctx.index = b.AddParameter(ir2.I64)
}

// genIf lowers an If using the same balanced/unbalanced split as genLoop.
func (l *lowering) genIf(v ir1.If) {
	b := l.b
	if v.Balanced {
		snap := l.ctx.snapshot()

		cond := l.testCondNotZero(v.Cond)
		l.ctx.spillValues(b)
		bodyBlk := b.AddBlock()
		end := b.AddBlock()
		b.Branch(cond, ir2.TargetBlock{ID: bodyBlk}, ir2.TargetBlock{ID: end})

		b.SelectBlock(bodyBlk)
		l.genList(v.Body)
		l.ctx.spillValues(b)
		b.Jump(ir2.TargetBlock{ID: end})

		b.SelectBlock(end)
		// as in genLoop's balanced path, only the address registers
		// survive the join; cell values are reloaded.
		l.ctx.restore(snap)
		return
	}

	cond := l.testCondNotZero(v.Cond)
	l.ctx.spillAll(b)
	preIdx := l.ctx.index
	bodyBlk := b.AddBlock()
	end := b.AddBlock()
	b.Branch(cond,
		ir2.TargetBlock{ID: bodyBlk},
		ir2.TargetBlock{ID: end, Args: []ir2.LeafExpr{ir2.Reg(preIdx)}})

	b.SelectBlock(bodyBlk)
	l.ctx.reset()
	// body has a single predecessor and no backedge, so it keeps using
	// the same index value rather than binding a fresh parameter.
	l.genList(v.Body)
	l.ctx.spillAll(b)
	bodyIdx := l.ctx.index
	b.Jump(ir2.TargetBlock{ID: end, Args: []ir2.LeafExpr{ir2.Reg(bodyIdx)}})

	b.SelectBlock(end)
	l.ctx.reset()
	l.ctx.index = b.AddParameter(ir2.I64)
}
