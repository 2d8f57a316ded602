package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/symtab"
)

// lowerExpr lowers any expression to a typedValue, dispatching by AST
// node kind. On a semantic error it reports a diagnostic and returns an
// INTEGER zero sentinel so callers can keep compiling.
func (cg *CodeGen) lowerExpr(expr ast.Expression) typedValue {
	if tv, ok := cg.materializeLiteral(expr); ok {
		return tv
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		return cg.lowerIdentifier(e)
	case *ast.ArrayAccess:
		return cg.lowerArrayAccessExpr(e)
	case *ast.UnaryExpr:
		operand := cg.lowerExpr(e.Operand)
		return cg.lowerUnary(e.Op, operand)
	case *ast.BinaryExpr:
		lhs := cg.lowerExpr(e.Left)
		rhs := cg.lowerExpr(e.Right)
		return cg.lowerBinary(e.Op, lhs, rhs, e.Line())
	case *ast.CallExpr:
		return cg.lowerCallExpr(e)
	default:
		cg.diag.Add(errdiag.Semantic, expr.Line(), "unsupported expression %T", expr)
		return typedValue{val: ir.ConstInt{Val: 0}, typ: ast.INTEGER}
	}
}

func (cg *CodeGen) lowerIdentifier(id *ast.Identifier) typedValue {
	slot, ok := cg.syms.Lookup(id.Value)
	if !ok {
		cg.diag.Add(errdiag.Semantic, id.Line(), "undeclared identifier %q", id.Value)
		return typedValue{val: ir.ConstInt{Val: 0}, typ: ast.INTEGER}
	}
	switch slot.Kind {
	case symtab.Scalar, symtab.Ref:
		return typedValue{val: cg.b.CreateLoad(slot.IRTy, slot.Addr), typ: slot.Type}
	default:
		cg.diag.Add(errdiag.Semantic, id.Line(), "%q is an array; use indexing or bare OUTPUT", id.Value)
		return typedValue{val: ir.ConstInt{Val: 0}, typ: ast.INTEGER}
	}
}

func (cg *CodeGen) lowerArrayAccessExpr(aa *ast.ArrayAccess) typedValue {
	indices := cg.lowerIndices(aa.Indices)
	addr, meta, ok := cg.lowerArrayElementAddr(aa.Name, indices, aa.Line())
	if !ok {
		return typedValue{val: ir.ConstInt{Val: 0}, typ: ast.INTEGER}
	}
	return typedValue{val: cg.b.CreateLoad(meta.ElemIRTy, addr), typ: meta.ElemType}
}

func (cg *CodeGen) lowerIndices(exprs []ast.Expression) []typedValue {
	out := make([]typedValue, len(exprs))
	for i, e := range exprs {
		out[i] = cg.lowerExpr(e)
	}
	return out
}

func (cg *CodeGen) lowerCallExpr(ce *ast.CallExpr) typedValue {
	args := cg.lowerCallArgs(ce.Callee, ce.Args, ce.Line())
	retTy := cg.callReturnType(ce.Callee)
	result := cg.b.CreateCall(ce.Callee, irType(retTy), args)
	return typedValue{val: result, typ: retTy}
}
