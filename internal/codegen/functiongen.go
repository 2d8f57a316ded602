package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/symtab"
)

// paramIRType is a parameter's machine type: BYREF parameters are lowered
// to pointer-to-declared-type.
func paramIRType(p ast.Param) ir.Type {
	if p.ByRef {
		return ir.Ptr
	}
	return irType(p.Type)
}

// genFunction lowers one FUNCTION/PROCEDURE definition into its own
// ir.Function: fresh entry block, fresh symbol-table scope, BYVAL
// parameters get their own slot, BYREF parameters are registered directly
// as the incoming pointer (no extra indirection).
func (cg *CodeGen) genFunction(fn *ast.FunctionStmt) {
	irParams := make([]ir.FuncParam, len(fn.Params))
	for i, p := range fn.Params {
		irParams[i] = ir.FuncParam{Name: p.Name, Typ: paramIRType(p)}
	}
	irFn := cg.b.Module.NewFunction(fn.Name, irParams, irType(fn.ReturnType))

	cg.b.SetFunction(irFn)
	entry := cg.b.CreateBlock("entry")
	cg.b.SetInsertPoint(entry)

	saved := cg.syms.EnterFunctionScope()
	defer cg.syms.LeaveFunctionScope(saved)

	for _, p := range fn.Params {
		incoming := &ir.Temp{Name: p.Name, Typ: paramIRType(p)}
		if p.ByRef {
			if err := cg.syms.Declare(p.Name, symtab.NewRef(incoming, p.Type, irType(p.Type))); err != nil {
				cg.diag.Add(errdiag.Semantic, fn.Line(), "%s", err)
			}
			continue
		}
		addr := cg.b.CreateAlloca(irType(p.Type))
		cg.b.CreateStore(incoming, addr)
		if err := cg.syms.Declare(p.Name, symtab.NewScalar(addr, p.Type, irType(p.Type))); err != nil {
			cg.diag.Add(errdiag.Semantic, fn.Line(), "%s", err)
		}
	}

	cg.hoistDeclarations(fn.Body)
	cg.genStatements(fn.Body)

	if !cg.b.HasTerminator() {
		if fn.ReturnType == ast.VOID {
			cg.b.CreateRet(nil)
		} else {
			cg.b.CreateRet(zeroValue(irType(fn.ReturnType)))
		}
	}
}

// genMain synthesizes the program's `main` entry point from every
// top-level statement that isn't a FUNCTION/PROCEDURE definition,
// returning 0 on fall-through.
func (cg *CodeGen) genMain(topLevel []ast.Statement) {
	irFn := cg.b.Module.NewFunction("main", nil, ir.I64)
	cg.b.SetFunction(irFn)
	entry := cg.b.CreateBlock("entry")
	cg.b.SetInsertPoint(entry)

	cg.hoistDeclarations(topLevel)
	cg.genStatements(topLevel)

	if !cg.b.HasTerminator() {
		cg.b.CreateRet(ir.ConstInt{Val: 0})
	}
}

// lowerCallArgs lowers a call's argument list against the callee's
// signature: a BYREF parameter position requires the corresponding
// argument to be a bare variable reference, lowered as that variable's
// address; every other position lowers normally. Returns nil on an arity
// mismatch against a known prototype.
func (cg *CodeGen) lowerCallArgs(callee string, args []ast.Expression, line int) []ir.Value {
	proto, known := cg.procs[callee]
	if !known {
		return cg.lowerUnknownCallArgs(callee, args)
	}
	if len(args) != len(proto.params) {
		cg.diag.Add(errdiag.Semantic, line, "call to %q expects %d arguments, got %d", callee, len(proto.params), len(args))
		return nil
	}
	values := make([]ir.Value, len(args))
	for i, argExpr := range args {
		p := proto.params[i]
		if p.ByRef {
			ident, ok := argExpr.(*ast.Identifier)
			if !ok {
				cg.diag.Add(errdiag.Semantic, line, "argument %d to %q must be a plain variable reference (BYREF)", i+1, callee)
				values[i] = ir.ConstInt{Val: 0}
				continue
			}
			values[i] = cg.lowerAddressOf(ident.Value, line)
			continue
		}
		values[i] = cg.lowerExpr(argExpr).val
	}
	return values
}

// lowerAddressOf returns the callee-visible pointer for a BYREF argument:
// a scalar's own slot address, or a Ref parameter's pointer passed
// straight through (no extra indirection is ever added).
func (cg *CodeGen) lowerAddressOf(name string, line int) ir.Value {
	slot, ok := cg.syms.Lookup(name)
	if !ok {
		cg.diag.Add(errdiag.Semantic, line, "undeclared identifier %q", name)
		return ir.ConstInt{Val: 0}
	}
	switch slot.Kind {
	case symtab.Scalar, symtab.Ref:
		return slot.Addr
	default:
		cg.diag.Add(errdiag.Semantic, line, "%q cannot be passed BYREF", name)
		return ir.ConstInt{Val: 0}
	}
}

// lowerUnknownCallArgs is the permissive fallback for a call to an
// undeclared name: create a forward extern with inferred argument types,
// returning INTEGER.
func (cg *CodeGen) lowerUnknownCallArgs(callee string, args []ast.Expression) []ir.Value {
	values := make([]ir.Value, len(args))
	paramTys := make([]ir.Type, len(args))
	for i, argExpr := range args {
		tv := cg.lowerExpr(argExpr)
		values[i] = tv.val
		paramTys[i] = tv.val.Type()
	}
	cg.b.Module.DeclareExtern(callee, paramTys, false, ir.I64)
	return values
}

// callReturnType reports a known callee's declared return type, or
// INTEGER for the inferred-extern fallback.
func (cg *CodeGen) callReturnType(callee string) ast.TypeTag {
	if proto, ok := cg.procs[callee]; ok {
		return proto.ret
	}
	return ast.INTEGER
}
