package parser

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/lexer"
)

// parseDeclareStatement handles both scalar and array DECLARE forms:
//
//	DECLARE name : T
//	DECLARE name : ARRAY[lb:ub {, lb:ub}] OF T
func (p *Parser) parseDeclareStatement() ast.Statement {
	tok := p.curToken // DECLARE
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	if !p.expectPeek(lexer.COLON) {
		return nil
	}

	if p.peekTokenIs(lexer.ARRAY) {
		p.nextToken() // cur = ARRAY
		return p.finishArrayDeclaration(tok, name)
	}

	p.nextToken() // cur = type token
	typ := parseTypeTag(p.curToken, p.diag)
	return &ast.DeclareScalarStmt{Token: tok, Name: name, Type: typ}
}

func (p *Parser) finishArrayDeclaration(tok lexer.Token, name string) ast.Statement {
	if !p.expectPeek(lexer.LBRACK) {
		return nil
	}
	var dims []ast.ArrayDim
	p.nextToken()
	dims = append(dims, p.parseArrayDim())
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		dims = append(dims, p.parseArrayDim())
	}
	if !p.expectPeek(lexer.RBRACK) {
		return nil
	}
	if !p.expectPeek(lexer.OF) {
		return nil
	}
	p.nextToken() // cur = element type token
	elemType := parseTypeTag(p.curToken, p.diag)
	return &ast.DeclareArrayStmt{Token: tok, Name: name, ElemType: elemType, Dims: dims}
}

// parseArrayDim parses one `lb:ub` pair. Precondition: curToken is the
// first token of the lower-bound expression.
func (p *Parser) parseArrayDim() ast.ArrayDim {
	lower := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.COLON) {
		return ast.ArrayDim{Lower: lower}
	}
	p.nextToken()
	upper := p.parseExpression(LOWEST)
	return ast.ArrayDim{Lower: lower, Upper: upper}
}
