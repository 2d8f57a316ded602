package parser

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/lexer"
)

// parseStatement dispatches on curToken's keyword/identifier class. A nil
// return reports no diagnostic of its own beyond what the specific branch
// already added; the caller (ParseProgram/parseBlockUntil) advances one
// token and resumes.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.DECLARE:
		return p.parseDeclareStatement()
	case lexer.INPUT:
		return p.parseInputStatement()
	case lexer.OUTPUT:
		return p.parseOutputStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.REPEAT:
		return p.parseRepeatStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.FUNCTION:
		return p.parseFunctionStatement()
	case lexer.PROCEDURE:
		return p.parseProcedureStatement()
	case lexer.CALL:
		return p.parseCallStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IDENT:
		return p.parseAssignOrArrayAssignStatement()
	default:
		p.errorf("unexpected token %s at start of statement", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseInputStatement() ast.Statement {
	tok := p.curToken // INPUT
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	return &ast.InputStmt{Token: tok, Name: p.curToken.Literal}
}

func (p *Parser) parseOutputStatement() ast.Statement {
	tok := p.curToken // OUTPUT
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.OutputStmt{Token: tok, Value: value}
}

// parseAssignOrArrayAssignStatement handles both
//
//	name <- expr
//	name[i {, j}] <- expr
//
// disambiguated on peekToken.
func (p *Parser) parseAssignOrArrayAssignStatement() ast.Statement {
	tok := p.curToken // IDENT
	name := tok.Literal

	if p.peekTokenIs(lexer.LBRACK) {
		p.nextToken() // cur = [
		p.nextToken()
		indices := []ast.Expression{p.parseExpression(LOWEST)}
		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			indices = append(indices, p.parseExpression(LOWEST))
		}
		if !p.expectPeek(lexer.RBRACK) {
			return nil
		}
		if !p.expectPeek(lexer.ASSIGN) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return &ast.AssignArrayStmt{Token: tok, Name: name, Indices: indices, Value: value}
	}

	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.AssignStmt{Token: tok, Name: name, Value: value}
}
