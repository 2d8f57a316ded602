// Package ast defines the Abstract Syntax Tree node types produced by the
// parser: a tagged sum type for expressions and one for statements, each
// node carrying the source line it started on for diagnostics. Columns are
// not tracked.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cwbudde/cpsc/internal/lexer"
)

// Node is the base interface shared by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Line() int
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Line() int {
	if len(p.Statements) > 0 {
		return p.Statements[0].Line()
	}
	return 0
}

// ---- Expressions ----

// IntegerLiteral is a bare integer constant.
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Line() int            { return il.Token.Line }
func (il *IntegerLiteral) String() string       { return fmt.Sprintf("%d", il.Value) }

// RealLiteral is a bare floating-point constant.
type RealLiteral struct {
	Token lexer.Token
	Value float64
}

func (rl *RealLiteral) expressionNode()      {}
func (rl *RealLiteral) TokenLiteral() string { return rl.Token.Literal }
func (rl *RealLiteral) Line() int            { return rl.Token.Line }
func (rl *RealLiteral) String() string       { return fmt.Sprintf("%g", rl.Value) }

// BooleanLiteral is TRUE or FALSE.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Line() int            { return bl.Token.Line }
func (bl *BooleanLiteral) String() string       { return fmt.Sprintf("%t", bl.Value) }

// Identifier is a bare variable reference.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (id *Identifier) expressionNode()      {}
func (id *Identifier) TokenLiteral() string { return id.Token.Literal }
func (id *Identifier) Line() int            { return id.Token.Line }
func (id *Identifier) String() string       { return id.Value }

// ArrayAccess indexes a (possibly multi-dimensional) array by one
// expression per dimension.
type ArrayAccess struct {
	Token   lexer.Token // the identifier token
	Name    string
	Indices []Expression
}

func (aa *ArrayAccess) expressionNode()      {}
func (aa *ArrayAccess) TokenLiteral() string { return aa.Token.Literal }
func (aa *ArrayAccess) Line() int            { return aa.Token.Line }
func (aa *ArrayAccess) String() string {
	var out bytes.Buffer
	out.WriteString(aa.Name)
	out.WriteString("[")
	parts := make([]string, len(aa.Indices))
	for i, idx := range aa.Indices {
		parts[i] = idx.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString("]")
	return out.String()
}

// UnaryExpr is a prefix NOT or unary minus.
type UnaryExpr struct {
	Token   lexer.Token
	Op      lexer.TokenType
	Operand Expression
}

func (ue *UnaryExpr) expressionNode()      {}
func (ue *UnaryExpr) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpr) Line() int            { return ue.Token.Line }
func (ue *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", ue.Token.Literal, ue.Operand.String())
}

// BinaryExpr is an infix arithmetic, comparison, or logical expression.
type BinaryExpr struct {
	Token lexer.Token // the operator token
	Op    lexer.TokenType
	Left  Expression
	Right Expression
}

func (be *BinaryExpr) expressionNode()      {}
func (be *BinaryExpr) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpr) Line() int            { return be.Token.Line }
func (be *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", be.Left.String(), be.Token.Literal, be.Right.String())
}

// CallExpr is a function call used as an expression (`f(a, b)`).
type CallExpr struct {
	Token  lexer.Token // the callee identifier token
	Callee string
	Args   []Expression
}

func (ce *CallExpr) expressionNode()      {}
func (ce *CallExpr) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpr) Line() int            { return ce.Token.Line }
func (ce *CallExpr) String() string {
	parts := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", ce.Callee, strings.Join(parts, ", "))
}
