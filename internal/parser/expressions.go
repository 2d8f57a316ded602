package parser

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/lexer"
)

// parseExpression is the Pratt loop: parse one prefix (primary) form, then
// repeatedly fold in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.errorf("no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(lexer.EOF) && minPrec < tokenPrecedence(p.peekToken.Type) {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.IntVal}
}

func (p *Parser) parseRealLiteral() ast.Expression {
	return &ast.RealLiteral{Token: p.curToken, Value: p.curToken.RealVal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == lexer.TRUE}
}

// parseIdentifierOrAccessOrCall disambiguates a bare identifier primary by
// its following token: `(` starts a call, `[` starts an array access,
// anything else is a plain variable reference.
func (p *Parser) parseIdentifierOrAccessOrCall() ast.Expression {
	tok := p.curToken
	switch p.peekToken.Type {
	case lexer.LPAREN:
		p.nextToken() // consume IDENT, cur = (
		return p.finishCallExpr(tok)
	case lexer.LBRACK:
		p.nextToken() // consume IDENT, cur = [
		return p.finishArrayAccess(tok)
	default:
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	}
}

func (p *Parser) finishCallExpr(callee lexer.Token) ast.Expression {
	// cur == LPAREN
	args := p.parseArgList()
	return &ast.CallExpr{Token: callee, Callee: callee.Literal, Args: args}
}

// parseArgList parses a parenthesized, comma-separated expression list.
// Precondition: curToken is LPAREN. Postcondition: curToken is RPAREN.
func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(lexer.RPAREN) {
		return args
	}
	return args
}

func (p *Parser) finishArrayAccess(name lexer.Token) ast.Expression {
	// cur == LBRACK
	p.nextToken()
	indices := []ast.Expression{p.parseExpression(LOWEST)}
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		indices = append(indices, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(lexer.RBRACK) {
		return &ast.ArrayAccess{Token: name, Name: name.Literal, Indices: indices}
	}
	return &ast.ArrayAccess{Token: name, Name: name.Literal, Indices: indices}
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	tok := p.curToken
	op := tok.Type
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{Token: tok, Op: op, Operand: operand}
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Type
	prec := tokenPrecedence(op)
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Token: tok, Op: op, Left: left, Right: right}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return expr
	}
	return expr
}
