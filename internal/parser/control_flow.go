package parser

import (
	"github.com/cwbudde/cpsc/internal/ast"
	"github.com/cwbudde/cpsc/internal/lexer"
)

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken // IF
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.THEN) {
		return nil
	}
	p.nextToken()
	thenBlock := p.parseBlockUntil(lexer.ELSE, lexer.ENDIF)

	var elseBlock []ast.Statement
	if p.curTokenIs(lexer.ELSE) {
		p.nextToken()
		elseBlock = p.parseBlockUntil(lexer.ENDIF)
	}
	if !p.curTokenIs(lexer.ENDIF) {
		p.errorf("expected ENDIF, got %s", p.curToken.Type)
		return &ast.IfStmt{Token: tok, Cond: cond, Then: thenBlock, Else: elseBlock}
	}
	// cur == ENDIF; ParseProgram/parseBlockUntil caller advances past it.
	return &ast.IfStmt{Token: tok, Cond: cond, Then: thenBlock, Else: elseBlock}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken // WHILE
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.DO) {
		return nil
	}
	p.nextToken()
	body := p.parseBlockUntil(lexer.ENDWHILE)
	if !p.curTokenIs(lexer.ENDWHILE) {
		p.errorf("expected ENDWHILE, got %s", p.curToken.Type)
	}
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	tok := p.curToken // REPEAT
	p.nextToken()
	body := p.parseBlockUntil(lexer.UNTIL)
	if !p.curTokenIs(lexer.UNTIL) {
		p.errorf("expected UNTIL, got %s", p.curToken.Type)
		return &ast.RepeatStmt{Token: tok, Body: body}
	}
	p.nextToken()
	until := p.parseExpression(LOWEST)
	return &ast.RepeatStmt{Token: tok, Body: body, Until: until}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken // FOR
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	loopVar := p.curToken.Literal
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	start := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.TO) {
		return nil
	}
	p.nextToken()
	end := p.parseExpression(LOWEST)

	var step ast.Expression
	if p.peekTokenIs(lexer.STEP) {
		p.nextToken()
		p.nextToken()
		step = p.parseExpression(LOWEST)
	}

	p.nextToken()
	body := p.parseBlockUntil(lexer.NEXT)
	if !p.curTokenIs(lexer.NEXT) {
		p.errorf("expected NEXT, got %s", p.curToken.Type)
		return &ast.ForStmt{Token: tok, Var: loopVar, Start: start, End: end, Step: step, Body: body}
	}
	if !p.expectPeek(lexer.IDENT) {
		return &ast.ForStmt{Token: tok, Var: loopVar, Start: start, End: end, Step: step, Body: body}
	}
	if p.curToken.Literal != loopVar {
		p.errorf("NEXT variable %q does not match FOR variable %q", p.curToken.Literal, loopVar)
	}
	return &ast.ForStmt{Token: tok, Var: loopVar, Start: start, End: end, Step: step, Body: body}
}
