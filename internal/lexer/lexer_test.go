package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `DECLARE x : INTEGER
x <- 21 * 2
OUTPUT x`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{DECLARE, "DECLARE", 1},
		{IDENT, "x", 1},
		{COLON, ":", 1},
		{INTEGER, "INTEGER", 1},
		{IDENT, "x", 2},
		{ASSIGN, "<-", 2},
		{INT, "21", 2},
		{ASTERISK, "*", 2},
		{INT, "2", 2},
		{OUTPUT, "OUTPUT", 3},
		{IDENT, "x", 3},
		{EOF, "", 3},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d", i, tt.expectedLine, tok.Line)
		}
	}
}

func TestMultiCharOperators(t *testing.T) {
	input := "<- = <> <= >= < >"
	tests := []TokenType{ASSIGN, EQ, NOT_EQ, LT_EQ, GT_EQ, LT, GT, EOF}
	l := New(input)
	for i, want := range tests {
		if tok := l.Next(); tok.Type != want {
			t.Fatalf("tests[%d]: expected %s, got %s", i, want, tok.Type)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `DECLARE INTEGER REAL BOOLEAN TRUE FALSE INPUT OUTPUT IF THEN ELSE ENDIF
WHILE DO ENDWHILE REPEAT UNTIL FOR TO STEP NEXT ARRAY OF DIV MOD AND OR NOT
FUNCTION ENDFUNCTION PROCEDURE ENDPROCEDURE RETURN RETURNS CALL BYREF BYVAL`

	expected := []TokenType{
		DECLARE, INTEGER, REALTYPE, BOOLEAN, TRUE, FALSE, INPUT, OUTPUT, IF, THEN, ELSE, ENDIF,
		WHILE, DO, ENDWHILE, REPEAT, UNTIL, FOR, TO, STEP, NEXT, ARRAY, OF, DIV, MOD, AND, OR, NOT,
		FUNCTION, ENDFUNCTION, PROCEDURE, ENDPROCEDURE, RETURN, RETURNS, CALL, BYREF, BYVAL,
	}

	l := New(input)
	for i, want := range expected {
		if tok := l.Next(); tok.Type != want {
			t.Fatalf("keyword[%d]: expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNumericLiteralDisambiguation(t *testing.T) {
	l := New("42 3.14 0 7.0")
	tok := l.Next()
	if tok.Type != INT || tok.IntVal != 42 {
		t.Fatalf("expected INT 42, got %v", tok)
	}
	tok = l.Next()
	if tok.Type != REAL || tok.RealVal != 3.14 {
		t.Fatalf("expected REAL 3.14, got %v", tok)
	}
	tok = l.Next()
	if tok.Type != INT || tok.IntVal != 0 {
		t.Fatalf("expected INT 0, got %v", tok)
	}
	tok = l.Next()
	if tok.Type != REAL || tok.RealVal != 7.0 {
		t.Fatalf("expected REAL 7.0, got %v", tok)
	}
}

func TestLineComment(t *testing.T) {
	input := "x <- 1 // set x to one\nOUTPUT x"
	l := New(input)
	want := []struct {
		typ  TokenType
		line int
	}{
		{IDENT, 1}, {ASSIGN, 1}, {INT, 1}, {OUTPUT, 2}, {IDENT, 2}, {EOF, 2},
	}
	for i, w := range want {
		tok := l.Next()
		if tok.Type != w.typ || tok.Line != w.line {
			t.Fatalf("tests[%d]: expected %s@%d, got %s@%d", i, w.typ, w.line, tok.Type, tok.Line)
		}
	}
}

func TestEOFIsStable(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Type != EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("x <- 1 $ 2")
	for {
		tok := l.Next()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL && tok.Literal != "$" {
			t.Fatalf("unexpected illegal token %q", tok.Literal)
		}
	}
}
