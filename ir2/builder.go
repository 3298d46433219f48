package ir2

// Builder is a low-level typed instruction emitter bound to one block at
// a time: every method type-checks its operands against the module's
// register arena before pushing an instruction, so codegen can't emit a
// malformed program by construction.
type Builder struct {
	module *Module
	block  BlockID
}

// NewBuilder returns a builder that appends to the given block.
func NewBuilder(m *Module, block BlockID) *Builder {
	return &Builder{module: m, block: block}
}

// SelectBlock redirects subsequent emission to a different block.
func (b *Builder) SelectBlock(block BlockID) {
	b.block = block
}

// AddBlock, AddRegister, AddParameter delegate to the module.
func (b *Builder) AddBlock() BlockID               { return b.module.AddBlock() }
func (b *Builder) AddRegister(t Type) RegisterID   { return b.module.AddRegister(t) }
func (b *Builder) AddParameter(t Type) RegisterID  { return b.module.AddParameter(b.block, t) }

func (b *Builder) push(i Instruction) {
	blk := b.module.Block(b.block)
	blk.Body = append(blk.Body, i)
}

// Nop emits a no-op, used as a placeholder removed by remove_nops.
func (b *Builder) Nop() {
	b.push(Instruction{Kind: Nop})
}

// LoadCell reads the tape cell at the given i64 index into a fresh i8
// register.
func (b *Builder) LoadCell(index LeafExpr) RegisterID {
	invariant(index.ExprType(b.module) == I64, "LoadCell index must be i64")
	target := b.AddRegister(I8)
	b.push(Instruction{Kind: LoadCell, Target: target, Index: index})
	return target
}

// StoreCell writes value into the tape cell at index.
func (b *Builder) StoreCell(index, value LeafExpr) {
	invariant(index.ExprType(b.module) == I64, "StoreCell index must be i64")
	invariant(value.ExprType(b.module) == I8, "StoreCell value must be i8")
	b.push(Instruction{Kind: StoreCell, Index: index, Value: value})
}

// CheckBounds asserts the tape is materialized over [start, end).
func (b *Builder) CheckBounds(start, end LeafExpr) {
	b.push(Instruction{Kind: BoundsCheckI, Start: start, End: end})
}

// Set assigns a bare leaf to a fresh register of the leaf's type.
func (b *Builder) Set(value LeafExpr) RegisterID {
	target := b.AddRegister(value.ExprType(b.module))
	b.push(Instruction{Kind: Assign, Target: target, Expr: LeafOf(value)})
	return target
}

// Binop emits a binary operation, requiring both operands share a type.
func (b *Builder) Binop(op BinaryOp, a, c LeafExpr) RegisterID {
	at := a.ExprType(b.module)
	invariant(at == c.ExprType(b.module), "binop operand type mismatch")
	target := b.AddRegister(at)
	b.push(Instruction{Kind: Assign, Target: target, Expr: BinaryOf(a, op, c)})
	return target
}

func (b *Builder) Add(a, c LeafExpr) RegisterID  { return b.Binop(Add, a, c) }
func (b *Builder) Sub(a, c LeafExpr) RegisterID  { return b.Binop(Sub, a, c) }
func (b *Builder) Mul(a, c LeafExpr) RegisterID  { return b.Binop(Mul, a, c) }
func (b *Builder) UDiv(a, c LeafExpr) RegisterID { return b.Binop(UDiv, a, c) }
func (b *Builder) IDiv(a, c LeafExpr) RegisterID { return b.Binop(IDiv, a, c) }
func (b *Builder) UMod(a, c LeafExpr) RegisterID { return b.Binop(UMod, a, c) }
func (b *Builder) IMod(a, c LeafExpr) RegisterID { return b.Binop(IMod, a, c) }
func (b *Builder) And(a, c LeafExpr) RegisterID  { return b.Binop(And, a, c) }
func (b *Builder) Or(a, c LeafExpr) RegisterID   { return b.Binop(Or, a, c) }
func (b *Builder) Xor(a, c LeafExpr) RegisterID  { return b.Binop(Xor, a, c) }

// Unop emits a unary operation.
func (b *Builder) Unop(op UnaryOp, a LeafExpr) RegisterID {
	at := a.ExprType(b.module)
	target := b.AddRegister(at)
	b.push(Instruction{Kind: Assign, Target: target, Expr: UnaryOf(op, a)})
	return target
}

func (b *Builder) Not(a LeafExpr) RegisterID { return b.Unop(Not, a) }
func (b *Builder) Neg(a LeafExpr) RegisterID { return b.Unop(Neg, a) }

// TestOp emits a same-typed comparison producing an i1.
func (b *Builder) TestOp(op TestOp, a, c LeafExpr) RegisterID {
	invariant(a.ExprType(b.module) == c.ExprType(b.module), "test operand type mismatch")
	target := b.AddRegister(I1)
	b.push(Instruction{Kind: Assign, Target: target, Expr: TestOf(a, op, c)})
	return target
}

// Output writes an i8 value to stdout.
func (b *Builder) Output(value LeafExpr) {
	invariant(value.ExprType(b.module) == I8, "Output value must be i8")
	b.push(Instruction{Kind: Output, Value: value})
}

// Input reads one byte into a fresh register, using default on EOF.
func (b *Builder) Input(def LeafExpr) RegisterID {
	invariant(def.ExprType(b.module) == I8, "Input default must be i8")
	target := b.AddRegister(I8)
	b.push(Instruction{Kind: Input, Target: target, Default: def})
	return target
}

// Jump terminates the current block unconditionally.
func (b *Builder) Jump(to TargetBlock) {
	b.push(Instruction{Kind: Jump, To: to})
}

// Branch terminates the current block conditionally on an i1 value.
func (b *Builder) Branch(cond LeafExpr, then, els TargetBlock) {
	invariant(cond.ExprType(b.module) == I1, "Branch condition must be i1")
	b.push(Instruction{Kind: Branch, Cond: cond, Then: then, Else: els})
}
