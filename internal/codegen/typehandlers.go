package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/symtab"
)

// declareScalar allocates a slot in the entry block, stores the
// representation's zero value, and registers the binding. Never performs
// coercion.
func (cg *CodeGen) declareScalar(name string, typ ast.TypeTag, line int) {
	ty := irType(typ)
	addr := cg.b.CreateAlloca(ty)
	cg.b.CreateStore(zeroValue(ty), addr)
	slot := symtab.NewScalar(addr, typ, ty)
	if err := cg.syms.Declare(name, slot); err != nil {
		cg.diag.Add(errdiag.Semantic, line, "%s", err)
	}
}

// zeroValue is the representation-appropriate zero literal (INTEGER 0,
// REAL 0.0, BOOLEAN false, STRING empty).
func zeroValue(ty ir.Type) ir.Value {
	switch ty {
	case ir.I64:
		return ir.ConstInt{Val: 0}
	case ir.Double:
		return ir.ConstReal{Val: 0}
	case ir.I1:
		return ir.ConstBool{Val: false}
	case ir.Ptr:
		return ir.NullPtr{}
	default:
		return ir.ConstInt{Val: 0}
	}
}

// materializeLiteral lowers a literal AST expression directly, with no
// symbol table lookup.
func (cg *CodeGen) materializeLiteral(expr ast.Expression) (typedValue, bool) {
	switch lit := expr.(type) {
	case *ast.IntegerLiteral:
		return typedValue{val: ir.ConstInt{Val: lit.Value}, typ: ast.INTEGER}, true
	case *ast.RealLiteral:
		return typedValue{val: ir.ConstReal{Val: lit.Value}, typ: ast.REAL}, true
	case *ast.BooleanLiteral:
		return typedValue{val: ir.ConstBool{Val: lit.Value}, typ: ast.BOOLEAN}, true
	default:
		return typedValue{}, false
	}
}
