package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/symtab"
)

// hoistDeclarations allocates every DECLARE's slot in the function entry
// block, wherever the declaration appears in the body (including nested
// inside IF/WHILE/REPEAT/FOR), zero-initialized before any control flow
// is emitted, so every slot dominates every use. genStatement treats a
// DECLARE it later encounters as a no-op, since the binding already
// exists.
func (cg *CodeGen) hoistDeclarations(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.DeclareScalarStmt:
			cg.declareScalar(s.Name, s.Type, s.Line())
		case *ast.DeclareArrayStmt:
			cg.declareArray(s.Name, s.ElemType, s.Dims, s.Line())
		case *ast.IfStmt:
			cg.hoistDeclarations(s.Then)
			cg.hoistDeclarations(s.Else)
		case *ast.WhileStmt:
			cg.hoistDeclarations(s.Body)
		case *ast.RepeatStmt:
			cg.hoistDeclarations(s.Body)
		case *ast.ForStmt:
			// The loop variable may have been declared already; give it a
			// slot only if it wasn't.
			if _, ok := cg.syms.Lookup(s.Var); !ok {
				cg.declareScalar(s.Var, ast.INTEGER, s.Line())
			}
			cg.hoistDeclarations(s.Body)
		}
	}
}

// genStatements lowers a statement list in order, stopping early if the
// current block has already been terminated (e.g. by a RETURN), since
// anything after that point would be dead code appended past a
// terminator.
func (cg *CodeGen) genStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		if cg.b.HasTerminator() {
			return
		}
		cg.genStatement(stmt)
	}
}

func (cg *CodeGen) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.DeclareScalarStmt, *ast.DeclareArrayStmt:
		// Already handled by hoistDeclarations.
	case *ast.AssignStmt:
		cg.genAssign(s)
	case *ast.AssignArrayStmt:
		cg.genAssignArray(s)
	case *ast.InputStmt:
		cg.genInput(s)
	case *ast.OutputStmt:
		cg.genOutput(s)
	case *ast.IfStmt:
		cg.genIf(s)
	case *ast.WhileStmt:
		cg.genWhile(s)
	case *ast.RepeatStmt:
		cg.genRepeat(s)
	case *ast.ForStmt:
		cg.genFor(s)
	case *ast.CallStmt:
		cg.genCallStatement(s)
	case *ast.ReturnStmt:
		cg.genReturn(s)
	default:
		cg.diag.Add(errdiag.Semantic, stmt.Line(), "unsupported statement %T", stmt)
	}
}

// genAssign stores the lowered value into the named scalar slot, applying
// a type-directed coercion first: integer to real promotion, 1-bit to
// 64-bit zero-extension into an integer slot.
func (cg *CodeGen) genAssign(s *ast.AssignStmt) {
	slot, ok := cg.syms.Lookup(s.Name)
	if !ok {
		cg.diag.Add(errdiag.Semantic, s.Line(), "undeclared identifier %q", s.Name)
		return
	}
	if slot.Kind != symtab.Scalar && slot.Kind != symtab.Ref {
		cg.diag.Add(errdiag.Semantic, s.Line(), "%q is not a scalar variable", s.Name)
		return
	}
	val := cg.lowerExpr(s.Value)
	coerced := cg.coerceForStore(val, slot.Type, slot.IRTy)
	cg.b.CreateStore(coerced, slot.Addr)
}

func (cg *CodeGen) genAssignArray(s *ast.AssignArrayStmt) {
	indices := cg.lowerIndices(s.Indices)
	addr, meta, ok := cg.lowerArrayElementAddr(s.Name, indices, s.Line())
	if !ok {
		return
	}
	val := cg.lowerExpr(s.Value)
	coerced := cg.coerceForStore(val, meta.ElemType, meta.ElemIRTy)
	cg.b.CreateStore(coerced, addr)
}

// coerceForStore adapts a value to the slot it is being stored into: an
// INTEGER value assigned into a REAL slot is promoted; a BOOLEAN value
// assigned into an INTEGER slot is zero-extended. Same-type assignment
// passes through unchanged.
func (cg *CodeGen) coerceForStore(val typedValue, targetType ast.TypeTag, targetIRTy ir.Type) ir.Value {
	if val.typ == targetType {
		return val.val
	}
	if targetType == ast.REAL && val.typ == ast.INTEGER {
		return cg.toReal(val).val
	}
	if targetType == ast.INTEGER && val.typ == ast.BOOLEAN {
		return cg.b.CreateZExt(val.val)
	}
	_ = targetIRTy
	return val.val
}

// genInput scans into the named slot: %lf into a REAL slot, a temporary
// integer then non-zero test into a BOOLEAN slot, otherwise %lld.
func (cg *CodeGen) genInput(s *ast.InputStmt) {
	slot, ok := cg.syms.Lookup(s.Name)
	if !ok {
		cg.diag.Add(errdiag.Semantic, s.Line(), "undeclared identifier %q", s.Name)
		return
	}
	if slot.Kind != symtab.Scalar && slot.Kind != symtab.Ref {
		cg.diag.Add(errdiag.Semantic, s.Line(), "%q is not a scalar variable", s.Name)
		return
	}

	switch slot.Type {
	case ast.REAL:
		fmtStr := cg.b.Module.InternString("%lf")
		cg.b.CreateCall("scanf", ir.I64, []ir.Value{fmtStr, slot.Addr})
	case ast.BOOLEAN:
		tmp := cg.b.CreateEntryAlloca(ir.I64)
		fmtStr := cg.b.Module.InternString("%lld")
		cg.b.CreateCall("scanf", ir.I64, []ir.Value{fmtStr, tmp})
		read := cg.b.CreateLoad(ir.I64, tmp)
		nonZero := cg.b.CreateBinOp(ir.ICmpNE, read, ir.ConstInt{Val: 0}, ir.I1)
		cg.b.CreateStore(nonZero, slot.Addr)
	default:
		fmtStr := cg.b.Module.InternString("%lld")
		cg.b.CreateCall("scanf", ir.I64, []ir.Value{fmtStr, slot.Addr})
	}
}

// genOutput dispatches OUTPUT by operand shape: a bare array name prints
// the whole array, a partially-indexed access (fewer indices than the
// array's rank) prints the remaining dimensions via a synthesized nested
// loop, and everything else prints as a single scalar value.
func (cg *CodeGen) genOutput(s *ast.OutputStmt) {
	if id, ok := s.Value.(*ast.Identifier); ok {
		if slot, found := cg.syms.Lookup(id.Value); found && slot.Kind == symtab.Array {
			cg.emitArrayOutput(id.Value, s.Line())
			return
		}
	}
	if aa, ok := s.Value.(*ast.ArrayAccess); ok {
		if slot, found := cg.syms.Lookup(aa.Name); found && slot.Kind == symtab.Array && len(aa.Indices) < slot.Meta.Rank() {
			prefix := cg.lowerIndices(aa.Indices)
			cg.emitArrayOutputDim(aa.Name, slot.Meta, len(prefix), prefix, s.Line())
			return
		}
	}
	cg.emitOutputValue(cg.lowerExpr(s.Value))
}

// emitOutputValue prints one scalar value with its type's format: %f for
// REAL, a TRUE/FALSE select for BOOLEAN, %s for STRING, %lld otherwise.
func (cg *CodeGen) emitOutputValue(val typedValue) {
	switch val.typ {
	case ast.REAL:
		fmtStr := cg.b.Module.InternString("%f\n")
		cg.b.CreateCall("printf", ir.I64, []ir.Value{fmtStr, val.val})
	case ast.BOOLEAN:
		trueStr := cg.b.Module.InternString("TRUE\n")
		falseStr := cg.b.Module.InternString("FALSE\n")
		thenBlk := cg.b.CreateBlock(cg.freshBlockName("out.true"))
		elseBlk := cg.b.CreateBlock(cg.freshBlockName("out.false"))
		mergeBlk := cg.b.CreateBlock(cg.freshBlockName("out.merge"))
		cg.b.CreateCondBr(val.val, thenBlk, elseBlk)

		cg.b.SetInsertPoint(thenBlk)
		cg.b.CreateCall("printf", ir.I64, []ir.Value{trueStr})
		cg.b.CreateBr(mergeBlk)

		cg.b.SetInsertPoint(elseBlk)
		cg.b.CreateCall("printf", ir.I64, []ir.Value{falseStr})
		cg.b.CreateBr(mergeBlk)

		cg.b.SetInsertPoint(mergeBlk)
	case ast.STRING:
		fmtStr := cg.b.Module.InternString("%s\n")
		cg.b.CreateCall("printf", ir.I64, []ir.Value{fmtStr, val.val})
	default:
		fmtStr := cg.b.Module.InternString("%lld\n")
		cg.b.CreateCall("printf", ir.I64, []ir.Value{fmtStr, val.val})
	}
}

func (cg *CodeGen) genCallStatement(s *ast.CallStmt) {
	args := cg.lowerCallArgs(s.Callee, s.Args, s.Line())
	retTy := cg.callReturnType(s.Callee)
	cg.b.CreateCall(s.Callee, irType(retTy), args)
}

func (cg *CodeGen) genReturn(s *ast.ReturnStmt) {
	if s.Value == nil {
		cg.b.CreateRet(nil)
		return
	}
	val := cg.lowerExpr(s.Value)
	cg.b.CreateRet(val.val)
}
