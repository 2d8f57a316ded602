package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/symtab"
)

// genIf lowers IF to then/else/merge blocks, each falling through to
// merge unless it already terminates.
func (cg *CodeGen) genIf(s *ast.IfStmt) {
	cond := cg.toBool(cg.lowerExpr(s.Cond))

	thenBlk := cg.b.CreateBlock(cg.freshBlockName("if.then"))
	elseBlk := cg.b.CreateBlock(cg.freshBlockName("if.else"))
	mergeBlk := cg.b.CreateBlock(cg.freshBlockName("if.merge"))
	cg.b.CreateCondBr(cond.val, thenBlk, elseBlk)

	cg.b.SetInsertPoint(thenBlk)
	cg.genStatements(s.Then)
	if !cg.b.HasTerminator() {
		cg.b.CreateBr(mergeBlk)
	}

	cg.b.SetInsertPoint(elseBlk)
	cg.genStatements(s.Else)
	if !cg.b.HasTerminator() {
		cg.b.CreateBr(mergeBlk)
	}

	cg.b.SetInsertPoint(mergeBlk)
}

// genWhile lowers WHILE to cond/loop/after blocks, pre-test semantics.
func (cg *CodeGen) genWhile(s *ast.WhileStmt) {
	condBlk := cg.b.CreateBlock(cg.freshBlockName("while.cond"))
	loopBlk := cg.b.CreateBlock(cg.freshBlockName("while.loop"))
	afterBlk := cg.b.CreateBlock(cg.freshBlockName("while.after"))

	cg.b.CreateBr(condBlk)

	cg.b.SetInsertPoint(condBlk)
	cond := cg.toBool(cg.lowerExpr(s.Cond))
	cg.b.CreateCondBr(cond.val, loopBlk, afterBlk)

	cg.b.SetInsertPoint(loopBlk)
	cg.genStatements(s.Body)
	if !cg.b.HasTerminator() {
		cg.b.CreateBr(condBlk)
	}

	cg.b.SetInsertPoint(afterBlk)
}

// genRepeat lowers REPEAT...UNTIL to loop/cond/after blocks, post-test
// true-exits semantics.
func (cg *CodeGen) genRepeat(s *ast.RepeatStmt) {
	loopBlk := cg.b.CreateBlock(cg.freshBlockName("repeat.loop"))
	condBlk := cg.b.CreateBlock(cg.freshBlockName("repeat.cond"))
	afterBlk := cg.b.CreateBlock(cg.freshBlockName("repeat.after"))

	cg.b.CreateBr(loopBlk)

	cg.b.SetInsertPoint(loopBlk)
	cg.genStatements(s.Body)
	if !cg.b.HasTerminator() {
		cg.b.CreateBr(condBlk)
	}

	cg.b.SetInsertPoint(condBlk)
	cond := cg.toBool(cg.lowerExpr(s.Until))
	cg.b.CreateCondBr(cond.val, afterBlk, loopBlk)

	cg.b.SetInsertPoint(afterBlk)
}

// genFor lowers FOR to cond/loop/inc/after blocks. The exit comparison is
// >= only when Step is a compile-time-constant negative integer; every
// other case, including a dynamically negative runtime step, uses <=. The
// only loop-direction signal in the source text is a literal STEP clause,
// so a runtime sign check buys nothing the language can express.
func (cg *CodeGen) genFor(s *ast.ForStmt) {
	slot, ok := cg.syms.Lookup(s.Var)
	if !ok || slot.Kind != symtab.Scalar {
		cg.diag.Add(errdiag.Semantic, s.Line(), "FOR variable %q is not declared", s.Var)
		return
	}

	start := cg.lowerExpr(s.Start)
	cg.b.CreateStore(cg.coerceForStore(start, slot.Type, slot.IRTy), slot.Addr)

	condBlk := cg.b.CreateBlock(cg.freshBlockName("for.cond"))
	loopBlk := cg.b.CreateBlock(cg.freshBlockName("for.loop"))
	incBlk := cg.b.CreateBlock(cg.freshBlockName("for.inc"))
	afterBlk := cg.b.CreateBlock(cg.freshBlockName("for.after"))

	cg.b.CreateBr(condBlk)

	cg.b.SetInsertPoint(condBlk)
	iv := cg.b.CreateLoad(slot.IRTy, slot.Addr)
	end := cg.lowerExpr(s.End)
	descending := stepIsConstNegative(s.Step)
	opcode := ir.ICmpSLE
	if descending {
		opcode = ir.ICmpSGE
	}
	cond := cg.b.CreateBinOp(opcode, iv, end.val, ir.I1)
	cg.b.CreateCondBr(cond, loopBlk, afterBlk)

	cg.b.SetInsertPoint(loopBlk)
	cg.genStatements(s.Body)
	if !cg.b.HasTerminator() {
		cg.b.CreateBr(incBlk)
	}

	cg.b.SetInsertPoint(incBlk)
	iv = cg.b.CreateLoad(slot.IRTy, slot.Addr)
	var step ir.Value = ir.ConstInt{Val: 1}
	if s.Step != nil {
		step = cg.lowerExpr(s.Step).val
	}
	next := cg.b.CreateBinOp(ir.Add, iv, step, ir.I64)
	cg.b.CreateStore(next, slot.Addr)
	cg.b.CreateBr(condBlk)

	cg.b.SetInsertPoint(afterBlk)
}

// stepIsConstNegative reports whether step folds (via evalConstInt) to an
// integer constant known to be negative at compile time.
func stepIsConstNegative(step ast.Expression) bool {
	if step == nil {
		return false
	}
	v, ok := evalConstInt(step)
	return ok && v < 0
}
