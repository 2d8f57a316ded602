package parser

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/lexer"
)

// parseFunctionStatement parses:
//
//	FUNCTION name(param {, param}) RETURNS type
//	  body
//	ENDFUNCTION
func (p *Parser) parseFunctionStatement() ast.Statement {
	tok := p.curToken // FUNCTION
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal

	params, ok := p.parseParamList()
	if !ok {
		return nil
	}

	if !p.expectPeek(lexer.RETURNS) {
		return nil
	}
	p.nextToken() // cur = return type token
	retType := parseTypeTag(p.curToken, p.diag)

	p.nextToken()
	body := p.parseBlockUntil(lexer.ENDFUNCTION)
	if !p.curTokenIs(lexer.ENDFUNCTION) {
		p.errorf("expected ENDFUNCTION, got %s", p.curToken.Type)
	}
	return &ast.FunctionStmt{Token: tok, Name: name, Params: params, ReturnType: retType, Body: body}
}

// parseProcedureStatement parses:
//
//	PROCEDURE name(param {, param})
//	  body
//	ENDPROCEDURE
//
// A procedure is a FunctionStmt with ReturnType == ast.VOID.
func (p *Parser) parseProcedureStatement() ast.Statement {
	tok := p.curToken // PROCEDURE
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal

	params, ok := p.parseParamList()
	if !ok {
		return nil
	}

	p.nextToken()
	body := p.parseBlockUntil(lexer.ENDPROCEDURE)
	if !p.curTokenIs(lexer.ENDPROCEDURE) {
		p.errorf("expected ENDPROCEDURE, got %s", p.curToken.Type)
	}
	return &ast.FunctionStmt{Token: tok, Name: name, Params: params, ReturnType: ast.VOID, Body: body}
}

// parseParamList parses a parenthesized, comma-separated parameter list:
//
//	([BYREF|BYVAL] name : type {, [BYREF|BYVAL] name : type})
//
// Parameters default to BYVAL when neither keyword is given. Precondition:
// peekToken is LPAREN. Postcondition on success: curToken is RPAREN.
func (p *Parser) parseParamList() ([]ast.Param, bool) {
	if !p.expectPeek(lexer.LPAREN) {
		return nil, false
	}
	var params []ast.Param
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params, true
	}
	p.nextToken()
	param, ok := p.parseParam()
	if !ok {
		return nil, false
	}
	params = append(params, param)
	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseParam parses one `[BYREF|BYVAL] name : type`. Precondition: curToken
// is the optional mode keyword or the parameter name. Postcondition:
// curToken is the type token.
func (p *Parser) parseParam() (ast.Param, bool) {
	byRef := false
	switch p.curToken.Type {
	case lexer.BYREF, lexer.BYVAL:
		byRef = p.curTokenIs(lexer.BYREF)
		if !p.expectPeek(lexer.IDENT) {
			return ast.Param{}, false
		}
	}
	name := p.curToken.Literal
	if !p.expectPeek(lexer.COLON) {
		return ast.Param{}, false
	}
	p.nextToken() // cur = type token
	typ := parseTypeTag(p.curToken, p.diag)
	return ast.Param{Name: name, Type: typ, ByRef: byRef}, true
}

// parseCallStatement parses `CALL name` or `CALL name(args)`; the
// parenthesized argument list is optional.
func (p *Parser) parseCallStatement() ast.Statement {
	tok := p.curToken // CALL
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	callee := p.curToken.Literal
	var args []ast.Expression
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		args = p.parseArgList()
	}
	return &ast.CallStmt{Token: tok, Callee: callee, Args: args}
}

// parseReturnStatement parses `RETURN` or `RETURN expr`. A bare RETURN
// (procedure exit) leaves Value nil.
func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken // RETURN
	if p.isStatementTerminator(p.peekToken.Type) {
		return &ast.ReturnStmt{Token: tok, Value: nil}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.ReturnStmt{Token: tok, Value: value}
}

// isStatementTerminator reports whether t ends an enclosing block, meaning
// a bare RETURN has no trailing expression.
func (p *Parser) isStatementTerminator(t lexer.TokenType) bool {
	switch t {
	case lexer.ENDFUNCTION, lexer.ENDPROCEDURE, lexer.ELSE, lexer.ENDIF,
		lexer.ENDWHILE, lexer.UNTIL, lexer.NEXT, lexer.EOF:
		return true
	default:
		return false
	}
}
