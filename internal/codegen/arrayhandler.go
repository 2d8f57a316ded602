package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/lexer"
	"github.com/cwbudde/cpsc/internal/symtab"
)

// declareArray evaluates all bounds, computes the row-major multipliers
// and total element count, mallocs count*sizeof(element) bytes, stores
// the raw pointer in an entry-block slot, and records the metadata keyed
// by name.
func (cg *CodeGen) declareArray(name string, elemType ast.TypeTag, dims []ast.ArrayDim, line int) {
	lower := make([]int64, len(dims))
	upper := make([]int64, len(dims))
	for i, d := range dims {
		lo, ok := evalConstInt(d.Lower)
		if !ok {
			cg.diag.Add(errdiag.Semantic, line, "array bound must be a compile-time integer constant")
			lo = 0
		}
		hi, ok := evalConstInt(d.Upper)
		if !ok {
			cg.diag.Add(errdiag.Semantic, line, "array bound must be a compile-time integer constant")
			hi = lo
		}
		lower[i] = lo
		upper[i] = hi
	}

	multiplier := make([]int64, len(dims))
	if len(dims) > 0 {
		multiplier[len(dims)-1] = 1
		for i := len(dims) - 2; i >= 0; i-- {
			multiplier[i] = multiplier[i+1] * (upper[i+1] - lower[i+1] + 1)
		}
	}

	meta := symtab.ArrayMeta{
		ElemType:   elemType,
		ElemIRTy:   irType(elemType),
		Lower:      lower,
		Upper:      upper,
		Multiplier: multiplier,
	}

	addr := cg.b.CreateAlloca(ir.Ptr)
	total := meta.Total()
	bytes := total * elemSize(meta.ElemIRTy)
	raw := cg.b.CreateCall("malloc", ir.Ptr, []ir.Value{ir.ConstInt{Val: bytes}})
	cg.b.CreateStore(raw, addr)

	if err := cg.syms.Declare(name, symtab.NewArray(addr, meta)); err != nil {
		cg.diag.Add(errdiag.Semantic, line, "%s", err)
	}
}

func elemSize(ty ir.Type) int64 {
	switch ty {
	case ir.I1:
		return 1
	case ir.I64, ir.Double, ir.Ptr:
		return 8
	default:
		return 8
	}
}

// evalConstInt folds a compile-time-constant integer expression: a bare
// integer literal, a unary minus, or any +/-/*/DIV/MOD combination of
// foldable operands. A bound that reads a variable or depends on a
// runtime value does not fold; declareArray rejects it, so array sizes
// stay host-side integers and malloc sizing, bounds guards, and
// whole-array OUTPUT loops all stay compile-time arithmetic.
func evalConstInt(expr ast.Expression) (int64, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return e.Value, true
	case *ast.UnaryExpr:
		if v, ok := evalConstInt(e.Operand); ok {
			if e.Op == lexer.MINUS {
				return -v, true
			}
			return v, true
		}
	case *ast.BinaryExpr:
		lhs, ok := evalConstInt(e.Left)
		if !ok {
			return 0, false
		}
		rhs, ok := evalConstInt(e.Right)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case lexer.PLUS:
			return lhs + rhs, true
		case lexer.MINUS:
			return lhs - rhs, true
		case lexer.ASTERISK:
			return lhs * rhs, true
		case lexer.SLASH, lexer.DIV:
			if rhs == 0 {
				return 0, false
			}
			return lhs / rhs, true
		case lexer.MOD:
			if rhs == 0 {
				return 0, false
			}
			return lhs % rhs, true
		}
	}
	return 0, false
}

// lowerArrayElementAddr computes the bounds-checked element pointer for
// name[indices...] via the row-major flat index
// sum((i_k - lower_k) * multiplier_k). One bounds check is emitted per
// dimension, each preceding the GEP, so every control path hits its guard
// before the element access.
func (cg *CodeGen) lowerArrayElementAddr(name string, indices []typedValue, line int) (*ir.Temp, symtab.ArrayMeta, bool) {
	slot, ok := cg.syms.Lookup(name)
	if !ok || slot.Kind != symtab.Array {
		cg.diag.Add(errdiag.Semantic, line, "%q is not a declared array", name)
		return nil, symtab.ArrayMeta{}, false
	}
	meta := slot.Meta
	if len(indices) != meta.Rank() {
		cg.diag.Add(errdiag.Semantic, line, "array %q expects %d indices, got %d", name, meta.Rank(), len(indices))
		return nil, meta, false
	}

	base := cg.b.CreateLoad(ir.Ptr, slot.ArrayAddr)

	var offset ir.Value = ir.ConstInt{Val: 0}
	for i, idx := range indices {
		cg.emitBoundsCheckGuard(idx.val, meta.Lower[i], meta.Upper[i], line)
		normalized := cg.b.CreateBinOp(ir.Sub, idx.val, ir.ConstInt{Val: meta.Lower[i]}, ir.I64)
		term := cg.b.CreateBinOp(ir.Mul, normalized, ir.ConstInt{Val: meta.Multiplier[i]}, ir.I64)
		offset = cg.b.CreateBinOp(ir.Add, offset, term, ir.I64)
	}

	addr := cg.b.CreateGEP(meta.ElemIRTy, base, offset)
	return addr, meta, true
}

// emitArrayOutput prints a whole array by synthesizing nested for-loops
// over every dimension in row-major order, printing each element with the
// element type's format string.
func (cg *CodeGen) emitArrayOutput(name string, line int) {
	slot, ok := cg.syms.Lookup(name)
	if !ok || slot.Kind != symtab.Array {
		cg.diag.Add(errdiag.Semantic, line, "%q is not a declared array", name)
		return
	}
	meta := slot.Meta
	cg.emitArrayOutputDim(name, meta, 0, nil, line)
}

// emitArrayOutputDim recurses dimension 0..rank, accumulating the loop
// index variables in indices; the terminal state (dim == rank) prints one
// element using the already-bounds-checked element address path.
func (cg *CodeGen) emitArrayOutputDim(name string, meta symtab.ArrayMeta, dim int, indices []typedValue, line int) {
	if dim == meta.Rank() {
		addr, _, ok := cg.lowerArrayElementAddr(name, indices, line)
		if !ok {
			return
		}
		elem := cg.b.CreateLoad(meta.ElemIRTy, addr)
		cg.emitOutputValue(typedValue{val: elem, typ: meta.ElemType})
		return
	}

	ivSlot := cg.b.CreateEntryAlloca(ir.I64)
	cg.b.CreateStore(ir.ConstInt{Val: meta.Lower[dim]}, ivSlot)

	condBlk := cg.b.CreateBlock(cg.freshBlockName("arr.cond"))
	loopBlk := cg.b.CreateBlock(cg.freshBlockName("arr.loop"))
	afterBlk := cg.b.CreateBlock(cg.freshBlockName("arr.after"))

	cg.b.CreateBr(condBlk)
	cg.b.SetInsertPoint(condBlk)
	iv := cg.b.CreateLoad(ir.I64, ivSlot)
	cond := cg.b.CreateBinOp(ir.ICmpSLE, iv, ir.ConstInt{Val: meta.Upper[dim]}, ir.I1)
	cg.b.CreateCondBr(cond, loopBlk, afterBlk)

	cg.b.SetInsertPoint(loopBlk)
	iv = cg.b.CreateLoad(ir.I64, ivSlot)
	cg.emitArrayOutputDim(name, meta, dim+1, append(indices, typedValue{val: iv, typ: ast.INTEGER}), line)
	next := cg.b.CreateBinOp(ir.Add, iv, ir.ConstInt{Val: 1}, ir.I64)
	cg.b.CreateStore(next, ivSlot)
	cg.b.CreateBr(condBlk)

	cg.b.SetInsertPoint(afterBlk)
}
