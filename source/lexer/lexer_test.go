package lexer

import (
	"testing"

	"github.com/tim-hardcastle/Minnow/source/token"
)

func TestNextToken(t *testing.T) {
	input := `def
Point = class(x int, y int)
factory Point(r float) : // a comment
    Point with (x::1, y::2)
total = 3.5 <= 4 and true != false
"he\"llo" [1, 2] ; :: % >=
`
	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.DEF, "def"},
		{token.NEWLINE, ";"},
		{token.IDENT, "Point"},
		{token.ASSIGN, "="},
		{token.CLASS, "class"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.IDENT, "int"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.IDENT, "int"},
		{token.RPAREN, ")"},
		{token.NEWLINE, ";"},
		{token.FACTORY, "factory"},
		{token.IDENT, "Point"},
		{token.LPAREN, "("},
		{token.IDENT, "r"},
		{token.IDENT, "float"},
		{token.RPAREN, ")"},
		{token.COLON, ":"},
		{token.NEWLINE, ";"},
		{token.IDENT, "Point"},
		{token.WITH, "with"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.DOUBLECOLON, "::"},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.DOUBLECOLON, "::"},
		{token.INT, "2"},
		{token.RPAREN, ")"},
		{token.NEWLINE, ";"},
		{token.IDENT, "total"},
		{token.ASSIGN, "="},
		{token.FLOAT, "3.5"},
		{token.LEQ, "<="},
		{token.INT, "4"},
		{token.AND, "and"},
		{token.TRUE, "true"},
		{token.NOT_EQ, "!="},
		{token.FALSE, "false"},
		{token.NEWLINE, ";"},
		{token.STRING, `he"llo`},
		{token.LBRACK, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.RBRACK, "]"},
		{token.SEMICOLON, ";"},
		{token.DOUBLECOLON, "::"},
		{token.PERCENT, "%"},
		{token.GEQ, ">="},
		{token.NEWLINE, ";"},
		{token.EOF, "EOF"},
	}
	l := New("test", input)
	for i, test := range tests {
		tok := l.NextToken()
		if tok.Type != test.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, test.expectedType, tok.Type)
		}
		if tok.Literal != test.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, test.expectedLiteral, tok.Literal)
		}
	}
}

// A string token's span is measured in runes of source text, so escapes and
// non-ASCII characters don't make the columns drift.
func TestStringPositions(t *testing.T) {
	l := New("test", `"héllo" + "a\"é"`)
	tests := []struct {
		expectedLiteral string
		expectedChStart int
		expectedChEnd   int
	}{
		{`héllo`, 0, 7},
		{`+`, 8, 9},
		{`a"é`, 10, 16},
	}
	for i, test := range tests {
		tok := l.NextToken()
		if tok.Literal != test.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, test.expectedLiteral, tok.Literal)
		}
		if tok.ChStart != test.expectedChStart || tok.ChEnd != test.expectedChEnd {
			t.Errorf("tests[%d] - span of %q wrong. expected=%d-%d, got=%d-%d",
				i, tok.Literal, test.expectedChStart, test.expectedChEnd, tok.ChStart, tok.ChEnd)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	input := `4 $ 22abc "unterminated`
	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.INT, "4"},
		{token.ILLEGAL, "lex/ill"},
		{token.ILLEGAL, "lex/number"},
		{token.ILLEGAL, "lex/quote"},
		{token.EOF, "EOF"},
	}
	l := New("test", input)
	for i, test := range tests {
		tok := l.NextToken()
		if tok.Type != test.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, test.expectedType, tok.Type)
		}
		if tok.Literal != test.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, test.expectedLiteral, tok.Literal)
		}
	}
	if len(l.GetErrors()) != 3 {
		t.Fatalf("wrong number of lexing errors: expected=3, got=%d", len(l.GetErrors()))
	}
}
