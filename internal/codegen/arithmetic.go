package codegen

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/ir"
	"github.com/cwbudde/cpsc/internal/lexer"
)

// lowerBinary applies the numeric coercion rules in order: `/` is always
// real division, DIV/MOD are integer-only, AND/OR reduce to booleans, and
// any remaining real operand promotes the other side.
func (cg *CodeGen) lowerBinary(op lexer.TokenType, lhs, rhs typedValue, line int) typedValue {
	switch op {
	case lexer.SLASH:
		// Real division: both operands promoted, divisor guarded.
		l := cg.toReal(lhs)
		r := cg.toReal(rhs)
		cg.emitDivByZeroGuard(r, line)
		return typedValue{val: cg.b.CreateBinOp(ir.FDiv, l.val, r.val, ir.Double), typ: ast.REAL}

	case lexer.DIV, lexer.MOD:
		// Integer-only.
		if lhs.typ != ast.INTEGER || rhs.typ != ast.INTEGER {
			cg.diag.Add(errdiag.Semantic, line, "%s requires integer operands", op)
			return typedValue{val: ir.ConstInt{Val: 0}, typ: ast.INTEGER}
		}
		cg.emitDivByZeroGuard(rhs, line)
		opcode := ir.SDiv
		if op == lexer.MOD {
			opcode = ir.SRem
		}
		return typedValue{val: cg.b.CreateBinOp(opcode, lhs.val, rhs.val, ir.I64), typ: ast.INTEGER}

	case lexer.AND, lexer.OR:
		// Both reduced to 1-bit booleans, then combined.
		l := cg.toBool(lhs)
		r := cg.toBool(rhs)
		opcode := ir.LogicalAnd
		if op == lexer.OR {
			opcode = ir.LogicalOr
		}
		return typedValue{val: cg.b.CreateBinOp(opcode, l.val, r.val, ir.I1), typ: ast.BOOLEAN}
	}

	// PLUS/MINUS/ASTERISK and comparisons.
	if lhs.typ == ast.REAL || rhs.typ == ast.REAL {
		l := cg.toReal(lhs)
		r := cg.toReal(rhs)
		return cg.lowerRealArithOrCompare(op, l, r)
	}
	return cg.lowerIntArithOrCompare(op, lhs, rhs)
}

func (cg *CodeGen) lowerRealArithOrCompare(op lexer.TokenType, l, r typedValue) typedValue {
	switch op {
	case lexer.PLUS:
		return typedValue{val: cg.b.CreateBinOp(ir.FAdd, l.val, r.val, ir.Double), typ: ast.REAL}
	case lexer.MINUS:
		return typedValue{val: cg.b.CreateBinOp(ir.FSub, l.val, r.val, ir.Double), typ: ast.REAL}
	case lexer.ASTERISK:
		return typedValue{val: cg.b.CreateBinOp(ir.FMul, l.val, r.val, ir.Double), typ: ast.REAL}
	default:
		return typedValue{val: cg.b.CreateBinOp(fcmpFor(op), l.val, r.val, ir.I1), typ: ast.BOOLEAN}
	}
}

func (cg *CodeGen) lowerIntArithOrCompare(op lexer.TokenType, l, r typedValue) typedValue {
	switch op {
	case lexer.PLUS:
		return typedValue{val: cg.b.CreateBinOp(ir.Add, l.val, r.val, ir.I64), typ: ast.INTEGER}
	case lexer.MINUS:
		return typedValue{val: cg.b.CreateBinOp(ir.Sub, l.val, r.val, ir.I64), typ: ast.INTEGER}
	case lexer.ASTERISK:
		return typedValue{val: cg.b.CreateBinOp(ir.Mul, l.val, r.val, ir.I64), typ: ast.INTEGER}
	default:
		return typedValue{val: cg.b.CreateBinOp(icmpFor(op), l.val, r.val, ir.I1), typ: ast.BOOLEAN}
	}
}

func icmpFor(op lexer.TokenType) ir.Op {
	switch op {
	case lexer.EQ:
		return ir.ICmpEQ
	case lexer.NOT_EQ:
		return ir.ICmpNE
	case lexer.LT:
		return ir.ICmpSLT
	case lexer.GT:
		return ir.ICmpSGT
	case lexer.LT_EQ:
		return ir.ICmpSLE
	default:
		return ir.ICmpSGE
	}
}

func fcmpFor(op lexer.TokenType) ir.Op {
	switch op {
	case lexer.EQ:
		return ir.FCmpOEQ
	case lexer.NOT_EQ:
		return ir.FCmpONE
	case lexer.LT:
		return ir.FCmpOLT
	case lexer.GT:
		return ir.FCmpOGT
	case lexer.LT_EQ:
		return ir.FCmpOLE
	default:
		return ir.FCmpOGE
	}
}

// toReal promotes a typedValue to REAL: a REAL value passes through
// unchanged, and any other value (INTEGER, or a BOOLEAN operand) is
// converted with a signed integer-to-real conversion.
func (cg *CodeGen) toReal(v typedValue) typedValue {
	if v.typ == ast.REAL {
		return v
	}
	return typedValue{val: cg.b.CreateSitoFP(v.val), typ: ast.REAL}
}

// toBool reduces v to a 1-bit boolean: integer zero-test, real
// non-equal-to-0.0, boolean passes through.
func (cg *CodeGen) toBool(v typedValue) typedValue {
	switch v.typ {
	case ast.BOOLEAN:
		return v
	case ast.REAL:
		return typedValue{val: cg.b.CreateBinOp(ir.FCmpONE, v.val, ir.ConstReal{Val: 0}, ir.I1), typ: ast.BOOLEAN}
	default:
		return typedValue{val: cg.b.CreateBinOp(ir.ICmpNE, v.val, ir.ConstInt{Val: 0}, ir.I1), typ: ast.BOOLEAN}
	}
}

// lowerUnary implements unary NOT (reduce-then-invert) and unary minus
// (negate in the operand's own numeric type).
func (cg *CodeGen) lowerUnary(op lexer.TokenType, operand typedValue) typedValue {
	if op == lexer.NOT {
		b := cg.toBool(operand)
		return typedValue{val: cg.b.CreateUnOp(ir.Not, b.val, ir.I1), typ: ast.BOOLEAN}
	}
	// unary MINUS
	if operand.typ == ast.REAL {
		return typedValue{val: cg.b.CreateUnOp(ir.FNeg, operand.val, ir.Double), typ: ast.REAL}
	}
	return typedValue{val: cg.b.CreateUnOp(ir.Neg, operand.val, ir.I64), typ: ast.INTEGER}
}
