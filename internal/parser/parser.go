// Package parser implements a hand-written recursive-descent parser with a
// Pratt (operator-precedence) sub-parser for expressions, driven by a
// single token of lookahead.
package parser

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/errdiag"
	"github.com/cwbudde/cpsc/internal/lexer"
)

// Precedence levels, higher binds tighter. OR binds looser than AND so
// `a AND b OR c` folds as `(a AND b) OR c`.
const (
	LOWEST  = 0
	OR      = 4
	AND     = 5
	EQUALS  = 10
	SUM     = 20
	PRODUCT = 40
	PREFIX  = 50
	CALLIDX = 60
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:       OR,
	lexer.AND:      AND,
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       EQUALS,
	lexer.GT:       EQUALS,
	lexer.LT_EQ:    EQUALS,
	lexer.GT_EQ:    EQUALS,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.DIV:      PRODUCT,
	lexer.MOD:      PRODUCT,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser is a single-token-lookahead recursive-descent parser.
type Parser struct {
	l    *lexer.Lexer
	diag *errdiag.Diagnostics

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser over l, reporting diagnostics into diag.
func New(l *lexer.Lexer, diag *errdiag.Diagnostics) *Parser {
	p := &Parser{l: l, diag: diag}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.INT:    p.parseIntegerLiteral,
		lexer.REAL:   p.parseRealLiteral,
		lexer.TRUE:   p.parseBooleanLiteral,
		lexer.FALSE:  p.parseBooleanLiteral,
		lexer.IDENT:  p.parseIdentifierOrAccessOrCall,
		lexer.MINUS:  p.parseUnaryExpr,
		lexer.NOT:    p.parseUnaryExpr,
		lexer.LPAREN: p.parseGroupedExpression,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:     p.parseBinaryExpr,
		lexer.MINUS:    p.parseBinaryExpr,
		lexer.ASTERISK: p.parseBinaryExpr,
		lexer.SLASH:    p.parseBinaryExpr,
		lexer.DIV:      p.parseBinaryExpr,
		lexer.MOD:      p.parseBinaryExpr,
		lexer.AND:      p.parseBinaryExpr,
		lexer.OR:       p.parseBinaryExpr,
		lexer.EQ:       p.parseBinaryExpr,
		lexer.NOT_EQ:   p.parseBinaryExpr,
		lexer.LT:       p.parseBinaryExpr,
		lexer.GT:       p.parseBinaryExpr,
		lexer.LT_EQ:    p.parseBinaryExpr,
		lexer.GT_EQ:    p.parseBinaryExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.Next()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, otherwise reports a
// diagnostic and leaves the cursor unmoved.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.diag.Add(errdiag.Parse, p.curToken.Line, format, args...)
}

func tokenPrecedence(t lexer.TokenType) int {
	if pr, ok := precedences[t]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream into a Program. On an
// unexpected token it reports a diagnostic, skips one token, and resumes
// at statement level, so the AST produced is best-effort.
func ParseProgram(l *lexer.Lexer, diag *errdiag.Diagnostics) *ast.Program {
	p := New(l, diag)
	program := &ast.Program{}
	for !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

// parseBlockUntil parses statements up to (but not including consuming)
// one of terminators. By convention every parse*Statement leaves curToken
// on the last token it consumed, so advancing once between statements is
// always correct, and an offending token is skipped by that same advance.
func (p *Parser) parseBlockUntil(terminators ...lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for !p.curTokenIs(lexer.EOF) && !p.atAny(terminators...) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
	return stmts
}

func (p *Parser) atAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.curTokenIs(t) {
			return true
		}
	}
	return false
}

func parseTypeTag(t lexer.Token, diag *errdiag.Diagnostics) ast.TypeTag {
	switch t.Type {
	case lexer.INTEGER:
		return ast.INTEGER
	case lexer.REALTYPE:
		return ast.REAL
	case lexer.BOOLEAN:
		return ast.BOOLEAN
	default:
		diag.Add(errdiag.Parse, t.Line, "expected a type name, got %s", t.Type)
		return ast.INVALID
	}
}
