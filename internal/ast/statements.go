package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/cpsc/internal/lexer"
)

// DeclareScalarStmt declares a single scalar-typed local.
type DeclareScalarStmt struct {
	Token lexer.Token // the DECLARE token
	Name  string
	Type  TypeTag
}

func (d *DeclareScalarStmt) statementNode()       {}
func (d *DeclareScalarStmt) TokenLiteral() string { return d.Token.Literal }
func (d *DeclareScalarStmt) Line() int            { return d.Token.Line }
func (d *DeclareScalarStmt) String() string {
	return "DECLARE " + d.Name + " : " + d.Type.String()
}

// DeclareArrayStmt declares a (possibly multi-dimensional) array.
type DeclareArrayStmt struct {
	Token    lexer.Token
	Name     string
	ElemType TypeTag
	Dims     []ArrayDim
}

func (d *DeclareArrayStmt) statementNode()       {}
func (d *DeclareArrayStmt) TokenLiteral() string { return d.Token.Literal }
func (d *DeclareArrayStmt) Line() int            { return d.Token.Line }
func (d *DeclareArrayStmt) String() string {
	var out bytes.Buffer
	out.WriteString("DECLARE " + d.Name + " : ARRAY[")
	parts := make([]string, len(d.Dims))
	for i, dim := range d.Dims {
		parts[i] = dim.Lower.String() + ":" + dim.Upper.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString("] OF " + d.ElemType.String())
	return out.String()
}

// AssignStmt assigns to a scalar slot.
type AssignStmt struct {
	Token lexer.Token // the identifier token
	Name  string
	Value Expression
}

func (a *AssignStmt) statementNode()       {}
func (a *AssignStmt) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStmt) Line() int            { return a.Token.Line }
func (a *AssignStmt) String() string       { return a.Name + " <- " + a.Value.String() }

// AssignArrayStmt assigns to one element of an array.
type AssignArrayStmt struct {
	Token   lexer.Token
	Name    string
	Indices []Expression
	Value   Expression
}

func (a *AssignArrayStmt) statementNode()       {}
func (a *AssignArrayStmt) TokenLiteral() string { return a.Token.Literal }
func (a *AssignArrayStmt) Line() int            { return a.Token.Line }
func (a *AssignArrayStmt) String() string {
	parts := make([]string, len(a.Indices))
	for i, idx := range a.Indices {
		parts[i] = idx.String()
	}
	return a.Name + "[" + strings.Join(parts, ", ") + "] <- " + a.Value.String()
}

// InputStmt reads a value into a named scalar.
type InputStmt struct {
	Token lexer.Token
	Name  string
}

func (i *InputStmt) statementNode()       {}
func (i *InputStmt) TokenLiteral() string { return i.Token.Literal }
func (i *InputStmt) Line() int            { return i.Token.Line }
func (i *InputStmt) String() string       { return "INPUT " + i.Name }

// OutputStmt writes the value of an expression.
type OutputStmt struct {
	Token lexer.Token
	Value Expression
}

func (o *OutputStmt) statementNode()       {}
func (o *OutputStmt) TokenLiteral() string { return o.Token.Literal }
func (o *OutputStmt) Line() int            { return o.Token.Line }
func (o *OutputStmt) String() string       { return "OUTPUT " + o.Value.String() }

// IfStmt is a selection statement with an optional else branch.
type IfStmt struct {
	Token lexer.Token
	Cond  Expression
	Then  []Statement
	Else  []Statement // nil if no ELSE branch
}

func (s *IfStmt) statementNode()       {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Literal }
func (s *IfStmt) Line() int            { return s.Token.Line }
func (s *IfStmt) String() string       { return "IF " + s.Cond.String() + " THEN ... ENDIF" }

// WhileStmt is a pre-test loop.
type WhileStmt struct {
	Token lexer.Token
	Cond  Expression
	Body  []Statement
}

func (s *WhileStmt) statementNode()       {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStmt) Line() int            { return s.Token.Line }
func (s *WhileStmt) String() string       { return "WHILE " + s.Cond.String() + " DO ... ENDWHILE" }

// RepeatStmt is a post-test loop; the loop exits once Until evaluates true.
type RepeatStmt struct {
	Token lexer.Token
	Body  []Statement
	Until Expression
}

func (s *RepeatStmt) statementNode()       {}
func (s *RepeatStmt) TokenLiteral() string { return s.Token.Literal }
func (s *RepeatStmt) Line() int            { return s.Token.Line }
func (s *RepeatStmt) String() string       { return "REPEAT ... UNTIL " + s.Until.String() }

// ForStmt is a counted loop; Step is nil when the source omitted STEP
// (defaulting to +1 at lowering time).
type ForStmt struct {
	Token lexer.Token
	Var   string
	Start Expression
	End   Expression
	Step  Expression // nil if absent
	Body  []Statement
}

func (s *ForStmt) statementNode()       {}
func (s *ForStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ForStmt) Line() int            { return s.Token.Line }
func (s *ForStmt) String() string {
	return "FOR " + s.Var + " <- " + s.Start.String() + " TO " + s.End.String() + " ... NEXT " + s.Var
}
