// Package codegen lowers a parsed program (internal/ast) into the IR
// module defined by internal/ir: runtime safety checks, type handlers,
// arithmetic coercion, array layout, function lowering, and structured
// control flow.
package codegen

import (
	"strconv"

	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/symtab"
)

// prototype is a known callee's signature, used both for call-site
// argument lowering (byref arguments must be addressed, not loaded) and
// for arity checking.
type prototype struct {
	params []ast.Param
	ret    ast.TypeTag
}

// CodeGen drives the AST-to-IR lowering. It owns the builder's insertion
// cursor, the scoped symbol table, and the set of known function
// prototypes, populated by a forward-declaration pass so recursive and
// forward calls resolve against their declared signatures.
type CodeGen struct {
	b     *ir.Builder
	syms  *symtab.Table
	diag  *errdiag.Diagnostics
	procs map[string]prototype

	blockCounter int
}

// New returns a CodeGen ready to compile one Program.
func New(diag *errdiag.Diagnostics) *CodeGen {
	return &CodeGen{
		b:     ir.NewBuilder(),
		syms:  symtab.New(),
		diag:  diag,
		procs: map[string]prototype{},
	}
}

// Generate lowers program into a complete IR module: every top-level
// FUNCTION/PROCEDURE becomes its own ir.Function, and every other
// top-level statement is collected into a synthesized `main`.
func (cg *CodeGen) Generate(program *ast.Program) *ir.Module {
	cg.declareRuntimeExterns()

	var topLevel []ast.Statement
	var funcs []*ast.FunctionStmt
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*ast.FunctionStmt); ok {
			funcs = append(funcs, fn)
			continue
		}
		topLevel = append(topLevel, stmt)
	}

	// Pass 1: register every prototype so calls (forward or backward) all
	// resolve without inferred-signature externs.
	for _, fn := range funcs {
		cg.registerPrototype(fn)
	}

	// Pass 2: emit bodies.
	for _, fn := range funcs {
		cg.genFunction(fn)
	}
	cg.genMain(topLevel)

	return cg.b.Module
}

func (cg *CodeGen) registerPrototype(fn *ast.FunctionStmt) {
	if _, exists := cg.procs[fn.Name]; exists {
		cg.diag.Add(errdiag.Semantic, fn.Line(), "function %q is already defined", fn.Name)
		return
	}
	cg.procs[fn.Name] = prototype{params: fn.Params, ret: fn.ReturnType}
}

func (cg *CodeGen) freshBlockName(prefix string) string {
	cg.blockCounter++
	return prefix + "." + strconv.Itoa(cg.blockCounter)
}

// irType maps a source type tag to its machine representation.
func irType(t ast.TypeTag) ir.Type {
	switch t {
	case ast.INTEGER:
		return ir.I64
	case ast.REAL:
		return ir.Double
	case ast.BOOLEAN:
		return ir.I1
	case ast.STRING:
		return ir.Ptr
	default:
		return ir.Void
	}
}
