package parser

import (
	"testing"

	"github.com/tim-hardcastle/Minnow/source/lexer"
	"github.com/tim-hardcastle/Minnow/source/token"
)

func lexLine(input string) []token.Token {
	lex := lexer.New("test", input)
	tokens := []token.Token{}
	for tok := lex.NextToken(); tok.Type != token.EOF; tok = lex.NextToken() {
		if tok.Type == token.NEWLINE {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`2 + 3 * 4`, `(2 + (3 * 4))`},
		{`(2 + 3) * 4`, `((2 + 3) * 4)`},
		{`-5 + 2`, `((-5) + 2)`},
		{`x::2`, `x::2`},
		{`Point with (x::1, y::2)`, `(Point with (x::1, y::2))`},
		{`a and b or not c`, `((a and b) or (not c))`},
		{`x < 3 : "small" ; else : "big"`, `(((x < 3) : "small") ; (else : "big"))`},
		{`x == 1 : 1 ; x == 2 : 2 ; else : 3`, `(((x == 1) : 1) ; (((x == 2) : 2) ; (else : 3)))`},
		{`l[2] + p[x]`, `((l[2]) + (p[x]))`},
		{`[1, 2, 3]`, `[((1, 2), 3)]`},
		{`[]`, `[]`},
		{`error "oops"`, `error "oops"`},
		{`x::Point with (y::1)`, `x::(Point with (y::1))`},
		{`1 % 2 == 0`, `((1 % 2) == 0)`},
	}
	for i, test := range tests {
		node, errors := ParseLine("test", test.input)
		if len(errors) > 0 {
			t.Fatalf("tests[%d] - unexpected error %q parsing %q", i, errors[0].ErrorId, test.input)
		}
		if node.String() != test.want {
			t.Errorf("tests[%d] - wrong parse of %q: expected %q, got %q", i, test.input, test.want, node.String())
		}
	}
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`Point = class(x int, y int = 0)`, `Point = class(x int, y int = 0)`},
		{`Point3 = class Point(z int)`, `Point3 = class Point(z int)`},
		{`Blank = class()`, `Blank = class()`},
		{`factory Circle(r float) : Circle with (radius::r)`, `factory Circle(r float) : (Circle with (radius::r))`},
		{`PI = 3.1416`, `(PI = 3.1416)`},
	}
	for i, test := range tests {
		p := New(lexLine(test.input))
		node := p.ParseDeclaration()
		if len(p.Errors) > 0 {
			t.Fatalf("tests[%d] - unexpected error %q parsing %q", i, p.Errors[0].ErrorId, test.input)
		}
		if node.String() != test.want {
			t.Errorf("tests[%d] - wrong parse of %q: expected %q, got %q", i, test.input, test.want, node.String())
		}
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`2 +`, "parse/prefix"},
		{`(2 + 3`, "parse/expect"},
		{`3 with (x::1)`, "parse/with"},
	}
	for i, test := range tests {
		_, errors := ParseLine("test", test.input)
		if len(errors) == 0 {
			t.Fatalf("tests[%d] - expected error %q parsing %q, got none", i, test.want, test.input)
		}
		if errors[0].ErrorId != test.want {
			t.Errorf("tests[%d] - wrong error parsing %q: expected %q, got %q", i, test.input, test.want, errors[0].ErrorId)
		}
	}
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`2 + 2`, "parse/decl"},
		{`factory 3(x int) : x`, "parse/expect"},
		{`Point = class(3 int)`, "parse/sig/a"},
		{`Point = class(x, y int)`, "parse/sig/b"},
		{`Point = class(x int y int)`, "parse/sig/c"},
		{`x = 2 2`, "parse/expect"},
	}
	for i, test := range tests {
		p := New(lexLine(test.input))
		p.ParseDeclaration()
		if len(p.Errors) == 0 {
			t.Fatalf("tests[%d] - expected error %q parsing %q, got none", i, test.want, test.input)
		}
		if p.Errors[0].ErrorId != test.want {
			t.Errorf("tests[%d] - wrong error parsing %q: expected %q, got %q", i, test.input, test.want, p.Errors[0].ErrorId)
		}
	}
}

func TestTypeSystem(t *testing.T) {
	ts := NewTypeSystem()
	ts.AddClass("Shape")
	ts.AddClass("Circle")
	ts.SetSuper("Circle", "Shape")
	ts.AddClass("Blob")
	ts.SetSuper("Blob", "Circle")
	tests := []struct {
		sub, super string
		want       bool
	}{
		{"int", "int", true},
		{"int", "float", false},
		{"Circle", "Shape", true},
		{"Shape", "Circle", false},
		{"Blob", "Shape", true},
		{"Blob", "Blob", true},
		{"Shape", "int", false},
	}
	for i, test := range tests {
		if got := ts.IsSameTypeOrSubtype(test.sub, test.super); got != test.want {
			t.Errorf("tests[%d] - IsSameTypeOrSubtype(%q, %q): expected %v, got %v", i, test.sub, test.super, test.want, got)
		}
	}
	if _, ok := ts.TypeOf("Shape"); !ok {
		t.Errorf("TypeOf can't find class Shape")
	}
	if name := ts.NameOf(5); name != "bool" {
		t.Errorf("NameOf(5): expected \"bool\", got %q", name)
	}
}
