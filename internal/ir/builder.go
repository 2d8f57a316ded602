package ir

import "strconv"

// Builder owns the single mutable "current insertion point" that every
// codegen visitor method shares: which function is being built, which
// block new instructions append to, and the per-function temp-name
// counter. This is the only place a Module is mutated.
type Builder struct {
	Module *Module

	fn  *Function
	blk *BasicBlock
}

// NewBuilder returns a Builder over an empty, freshly created module.
func NewBuilder() *Builder {
	return &Builder{Module: NewModule()}
}

// SetFunction switches the insertion point to fn with no current block;
// CreateBlock/SetInsertPoint must follow before emitting instructions.
func (b *Builder) SetFunction(fn *Function) {
	b.fn = fn
	b.blk = nil
}

// CreateBlock appends a new, empty basic block to the current function and
// returns it without switching the insertion point to it.
func (b *Builder) CreateBlock(name string) *BasicBlock {
	blk := &BasicBlock{Name: name}
	b.fn.Blocks = append(b.fn.Blocks, blk)
	return blk
}

// SetInsertPoint switches the insertion point to blk.
func (b *Builder) SetInsertPoint(blk *BasicBlock) {
	b.blk = blk
}

// InsertBlock returns the block instructions are currently appended to.
func (b *Builder) InsertBlock() *BasicBlock {
	return b.blk
}

// HasTerminator reports whether the current block already ends in a
// terminator, meaning any further emission into it would be dead code
// (codegen checks this before closing off unreachable-after-guard paths).
func (b *Builder) HasTerminator() bool {
	return b.blk != nil && b.blk.Terminator() != nil
}

func (b *Builder) freshTemp(t Type) *Temp {
	b.fn.nextTmp++
	return &Temp{Name: strconv.Itoa(b.fn.nextTmp), Typ: t}
}

func (b *Builder) emit(instr Instr) {
	b.blk.append(instr)
}

// CreateAlloca reserves a scalar stack slot.
func (b *Builder) CreateAlloca(elemTy Type) *Temp {
	r := b.freshTemp(Ptr)
	b.emit(&Alloca{Result: r, ElemTy: elemTy})
	return r
}

// CreateEntryAlloca reserves a scalar stack slot in the current function's
// entry block, regardless of where the insertion point currently is, so
// synthesized temporaries follow the same entry-block convention as named
// locals. If the entry block has already been terminated, the alloca is
// inserted just before its terminator.
func (b *Builder) CreateEntryAlloca(elemTy Type) *Temp {
	r := b.freshTemp(Ptr)
	instr := &Alloca{Result: r, ElemTy: elemTy}
	entry := b.fn.Entry()
	if entry.Terminator() != nil {
		last := len(entry.Instrs) - 1
		term := entry.Instrs[last]
		entry.Instrs = append(entry.Instrs[:last], instr, term)
		return r
	}
	entry.append(instr)
	return r
}

// CreateArrayAlloca reserves numElem contiguous elemTy-sized slots.
func (b *Builder) CreateArrayAlloca(elemTy Type, numElem Value) *Temp {
	r := b.freshTemp(Ptr)
	b.emit(&Alloca{Result: r, ElemTy: elemTy, NumElem: numElem})
	return r
}

// CreateLoad reads ty from addr.
func (b *Builder) CreateLoad(ty Type, addr Value) *Temp {
	r := b.freshTemp(ty)
	b.emit(&Load{Result: r, Ty: ty, Addr: addr})
	return r
}

// CreateStore writes val to addr.
func (b *Builder) CreateStore(val Value, addr Value) {
	b.emit(&Store{Val: val, Addr: addr})
}

// CreateBinOp emits a binary instruction whose result type is resultTy
// (I1 for comparisons/logical ops, I64/Double for arithmetic).
func (b *Builder) CreateBinOp(op Op, lhs, rhs Value, resultTy Type) *Temp {
	r := b.freshTemp(resultTy)
	b.emit(&BinOp{Result: r, Opcode: op, Lhs: lhs, Rhs: rhs})
	return r
}

// CreateUnOp emits a unary instruction.
func (b *Builder) CreateUnOp(op UnOp, operand Value, resultTy Type) *Temp {
	r := b.freshTemp(resultTy)
	b.emit(&UnaryOp{Result: r, Opcode: op, Operand: operand})
	return r
}

// CreateCall emits a call to callee. retTy == Void yields no result value.
func (b *Builder) CreateCall(callee string, retTy Type, args []Value) *Temp {
	var r *Temp
	if retTy != Void {
		r = b.freshTemp(retTy)
	}
	b.emit(&Call{Result: r, Callee: callee, RetTy: retTy, Args: args})
	return r
}

// CreateSitoFP converts an I64 value to Double.
func (b *Builder) CreateSitoFP(val Value) *Temp {
	r := b.freshTemp(Double)
	b.emit(&SitoFP{Result: r, Val: val})
	return r
}

// CreateFPtoSI converts a Double value to I64.
func (b *Builder) CreateFPtoSI(val Value) *Temp {
	r := b.freshTemp(I64)
	b.emit(&FPtoSI{Result: r, Val: val})
	return r
}

// CreateZExt widens an I1 value to I64.
func (b *Builder) CreateZExt(val Value) *Temp {
	r := b.freshTemp(I64)
	b.emit(&ZExt{Result: r, Val: val})
	return r
}

// CreateGEP computes base + index*sizeof(elemTy), as a Ptr.
func (b *Builder) CreateGEP(elemTy Type, base Value, index Value) *Temp {
	r := b.freshTemp(Ptr)
	b.emit(&GetElemPtr{Result: r, ElemTy: elemTy, Base: base, Index: index})
	return r
}

// CreateBr emits an unconditional branch, terminating the current block.
func (b *Builder) CreateBr(target *BasicBlock) {
	b.emit(&Br{Target: target})
}

// CreateCondBr emits a conditional branch, terminating the current block.
func (b *Builder) CreateCondBr(cond Value, then, els *BasicBlock) {
	b.emit(&CondBr{Cond: cond, Then: then, Else: els})
}

// CreateRet emits a return, terminating the current block. val is nil for
// a Void function.
func (b *Builder) CreateRet(val Value) {
	b.emit(&Ret{Val: val})
}

// CreateUnreachable marks the current block as unreachable (used after a
// RuntimeCheck guard's call to exit()).
func (b *Builder) CreateUnreachable() {
	b.emit(Unreachable{})
}
