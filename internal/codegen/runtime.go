package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/ir"
)

// declareRuntimeExterns declares, once, the full runtime library surface
// the emitted IR may reference. Unused declarations are harmless; every
// generated module is self-contained regardless of which intrinsics the
// source program happens to exercise.
func (cg *CodeGen) declareRuntimeExterns() {
	m := cg.b.Module
	m.DeclareExtern("printf", []ir.Type{ir.Ptr}, true, ir.I64)
	m.DeclareExtern("scanf", []ir.Type{ir.Ptr}, true, ir.I64)
	m.DeclareExtern("malloc", []ir.Type{ir.I64}, false, ir.Ptr)
	m.DeclareExtern("free", []ir.Type{ir.Ptr}, false, ir.Void)
	m.DeclareExtern("exit", []ir.Type{ir.I64}, false, ir.Void)
	m.DeclareExtern("strlen", []ir.Type{ir.Ptr}, false, ir.I64)
	m.DeclareExtern("memcpy", []ir.Type{ir.Ptr, ir.Ptr, ir.I64}, false, ir.Ptr)
	m.DeclareExtern("toupper", []ir.Type{ir.I64}, false, ir.I64)
	m.DeclareExtern("tolower", []ir.Type{ir.I64}, false, ir.I64)
}

// emitDivByZeroGuard emits the printf+exit sequence taken when a divisor
// is zero, wired into every `/`, `DIV`, and `MOD` lowering. divisor is
// either I64 or Double; the zero constant compared against matches its
// type.
func (cg *CodeGen) emitDivByZeroGuard(divisor typedValue, line int) {
	var cond *ir.Temp
	if divisor.val.Type() == ir.Double {
		cond = cg.b.CreateBinOp(ir.FCmpOEQ, divisor.val, ir.ConstReal{Val: 0}, ir.I1)
	} else {
		cond = cg.b.CreateBinOp(ir.ICmpEQ, divisor.val, ir.ConstInt{Val: 0}, ir.I1)
	}

	failBlk := cg.b.CreateBlock(cg.freshBlockName("divzero.fail"))
	contBlk := cg.b.CreateBlock(cg.freshBlockName("divzero.cont"))
	cg.b.CreateCondBr(cond, failBlk, contBlk)

	cg.b.SetInsertPoint(failBlk)
	msg := cg.b.Module.InternString("[Fatal] line %d: Division by zero\n")
	cg.b.CreateCall("printf", ir.I64, []ir.Value{msg, ir.ConstInt{Val: int64(line)}})
	cg.b.CreateCall("exit", ir.Void, []ir.Value{ir.ConstInt{Val: 1}})
	cg.b.CreateUnreachable()

	cg.b.SetInsertPoint(contBlk)
}

// emitBoundsCheckGuard checks lower <= index <= upper for one dimension,
// emitted before every element load or store.
func (cg *CodeGen) emitBoundsCheckGuard(index ir.Value, lower, upper int64, line int) {
	tooLow := cg.b.CreateBinOp(ir.ICmpSLT, index, ir.ConstInt{Val: lower}, ir.I1)
	tooHigh := cg.b.CreateBinOp(ir.ICmpSGT, index, ir.ConstInt{Val: upper}, ir.I1)
	outOfBounds := cg.b.CreateBinOp(ir.LogicalOr, tooLow, tooHigh, ir.I1)

	failBlk := cg.b.CreateBlock(cg.freshBlockName("bounds.fail"))
	contBlk := cg.b.CreateBlock(cg.freshBlockName("bounds.cont"))
	cg.b.CreateCondBr(outOfBounds, failBlk, contBlk)

	cg.b.SetInsertPoint(failBlk)
	msg := cg.b.Module.InternString("[Fatal] line %d: Array index out of bounds\n")
	cg.b.CreateCall("printf", ir.I64, []ir.Value{msg, ir.ConstInt{Val: int64(line)}})
	cg.b.CreateCall("exit", ir.Void, []ir.Value{ir.ConstInt{Val: 1}})
	cg.b.CreateUnreachable()

	cg.b.SetInsertPoint(contBlk)
}

// typedValue pairs a lowered IR value with the source type it represents.
// ir.Value alone cannot distinguish e.g. a STRING pointer from a future
// pointer-typed extension, so codegen threads the source type tag
// alongside every lowered expression.
type typedValue struct {
	val ir.Value
	typ ast.TypeTag
}
