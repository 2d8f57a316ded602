package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/cpsc/internal/lexer"
)

// Param is one entry of a FUNCTION/PROCEDURE parameter list.
type Param struct {
	Name  string
	Type  TypeTag
	ByRef bool
}

// FunctionStmt covers both FUNCTION and PROCEDURE definitions; a procedure
// is a function whose ReturnType is VOID.
type FunctionStmt struct {
	Token      lexer.Token // the FUNCTION/PROCEDURE token
	Name       string
	Params     []Param
	ReturnType TypeTag
	Body       []Statement
}

func (fs *FunctionStmt) statementNode()       {}
func (fs *FunctionStmt) TokenLiteral() string { return fs.Token.Literal }
func (fs *FunctionStmt) Line() int            { return fs.Token.Line }
func (fs *FunctionStmt) String() string {
	var out bytes.Buffer
	if fs.ReturnType == VOID {
		out.WriteString("PROCEDURE ")
	} else {
		out.WriteString("FUNCTION ")
	}
	out.WriteString(fs.Name)
	out.WriteString("(")
	parts := make([]string, len(fs.Params))
	for i, p := range fs.Params {
		mode := "BYVAL"
		if p.ByRef {
			mode = "BYREF"
		}
		parts[i] = mode + " " + p.Name + " : " + p.Type.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	if fs.ReturnType != VOID {
		out.WriteString(" RETURNS " + fs.ReturnType.String())
	}
	return out.String()
}

// CallStmt is a CALL statement (a call used for its side effects, ignoring
// any return value).
type CallStmt struct {
	Token  lexer.Token
	Callee string
	Args   []Expression
}

func (cs *CallStmt) statementNode()       {}
func (cs *CallStmt) TokenLiteral() string { return cs.Token.Literal }
func (cs *CallStmt) Line() int            { return cs.Token.Line }
func (cs *CallStmt) String() string {
	parts := make([]string, len(cs.Args))
	for i, a := range cs.Args {
		parts[i] = a.String()
	}
	return "CALL " + cs.Callee + "(" + strings.Join(parts, ", ") + ")"
}

// ReturnStmt optionally carries a value; absent for procedures or a bare
// RETURN inside a function.
type ReturnStmt struct {
	Token lexer.Token
	Value Expression // nil if absent
}

func (rs *ReturnStmt) statementNode()       {}
func (rs *ReturnStmt) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStmt) Line() int            { return rs.Token.Line }
func (rs *ReturnStmt) String() string {
	if rs.Value == nil {
		return "RETURN"
	}
	return "RETURN " + rs.Value.String()
}
