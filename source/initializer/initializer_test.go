package initializer

import (
	"testing"

	"github.com/tim-hardcastle/Minnow/source/values"
)

func errorIds(code string) []string {
	_, errors := Initialize("test", code)
	ids := []string{}
	for _, e := range errors {
		ids = append(ids, e.ErrorId)
	}
	return ids
}

func count(ids []string, id string) int {
	result := 0
	for _, i := range ids {
		if i == id {
			result++
		}
	}
	return result
}

func TestStaticErrors(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{`def
Point = class(x int, y int)
p = Point with (x::1, x::1, y::2)`, "parse/record/duplicate"},
		{`def
Shape = class(color string)
Circle = class Shape(color string, radius float)`, "init/class/redeclare"},
		{`def
Point = class(x int, y int)
p = Point with (x::1)`, "init/construct/missing"},
		{`def
Point = class(x int, y int)
p = Point with (x::1, y::2, z::3)`, "init/construct/unknown"},
		{`def
Point = class(x int, y int)
p = Point with (x::1, y::"two")`, "init/construct/type"},
		{`def
Temp = class(degrees float)
factory Temp(degrees float) : degrees > -273.15 : Temp with (degrees::degrees)`, "init/factory/return"},
		{`def
Point = class(x int, y int)
Point = class(z int)`, "init/class/exists"},
		{`def
Circle = class Shape(radius float)`, "init/class/super"},
		{`def
Point = class(x int, x int)`, "init/class/duplicate"},
		{`def
Point = class(x wibble)`, "init/class/type"},
		{`def
k = 1
k = 2`, "init/const/exists"},
		{`def
a = b
b = a`, "init/const/cycle"},
		{`def
int = 42`, "init/const/name"},
		{`def
factory Nope(x int) : error "no"`, "init/factory/class"},
		{`def
Point = class(x int)
factory Point(x int) : Point with (x::x)
factory Point(y int) : Point with (x::y)`, "init/factory/exists"},
		{`def
Point = class(x int = "oops", y int)`, "init/default/type"},
		{`def
P = class(x int)
factory P(x int) : wibble > 0 : P with (x::x) ; else : error "no"`, "check/ident"},
		{`def
P = class(x int)
factory P(s string) : P with (x::s)`, "init/construct/type"},
		{`def
A = class(x wibble)
k = A with (x::1)`, "init/class/broken"},
		{`def
A = class(x wibble)
B = class A(y int)`, "init/class/inherit"},
		{`Point = class(x int)`, "init/head"},
		{`def
Shape = class(color string)
Circle = class Shape(radius float)
factory Circle(c string) : Shape with (color::c)
Holder = class(inner Circle)
k = Holder with (inner::Circle with (c::"red"))`, "init/construct/type"},
	}
	for i, test := range tests {
		ids := errorIds(test.code)
		if count(ids, test.want) == 0 {
			t.Errorf("tests[%d] - expected error %q, got %v", i, test.want, ids)
		}
	}
}

// A cycle of superclasses breaks every class on it, and each of them says so.
func TestClassCycle(t *testing.T) {
	ids := errorIds(`def
A = class B(x int)
B = class A(y int)`)
	if count(ids, "init/class/cycle") != 2 {
		t.Errorf("expected two cycle errors, got %v", ids)
	}
}

// A factory may end by delegating to a superclass's factory instead of
// calling its own raw constructor.
func TestSupertypeDelegation(t *testing.T) {
	ids := errorIds(`def
Shape = class(color string)
Circle = class Shape(radius float)
factory Circle(c string) : Shape with (color::c)
factory Shape(color string) : Circle with (color::color, radius::1.0)`)
	if count(ids, "init/factory/return") != 1 {
		t.Errorf("only the delegation from Shape down to Circle should be rejected, got %v", ids)
	}
}

// A creation call through a delegating factory makes an instance of whatever
// class the chain of delegations bottoms out in, and the checker types it as
// such.
func TestDelegatedConstruction(t *testing.T) {
	model, errors := Initialize("test", `def
A = class(x int)
B = class A(y int = 0)
C = class B(z int = 0)
factory B(x int) : A with (x::x)
factory C(x int) : B with (x::x)
k = C with (x::1)`)
	if len(errors) > 0 {
		t.Fatalf("unexpected errors %v", errors)
	}
	if got := model.Classes["C"].Factory.Constructs; got != "A" {
		t.Errorf("C's factory should construct A by way of B's, got %q", got)
	}
	v, ok := model.Constants["k"]
	if !ok {
		t.Fatal("constant k wasn't initialized")
	}
	if got := model.Types.NameOf(v.T); got != "A" {
		t.Errorf("k should be an A, got %q", got)
	}
}

// One broken class doesn't stop the others from being checked.
func TestErrorsAccumulate(t *testing.T) {
	ids := errorIds(`def
A = class(x wibble)
B = class(y int, y int)
C = class(z int)
p = C with (z::1, w::2)`)
	for _, want := range []string{"init/class/type", "init/class/duplicate", "init/construct/unknown"} {
		if count(ids, want) == 0 {
			t.Errorf("expected error %q, got %v", want, ids)
		}
	}
}

func TestTerminationCheck(t *testing.T) {
	tests := []struct {
		body string
		ok   bool
	}{
		{`Temp with (degrees::d)`, true},
		{`error "no"`, true},
		{`d > 0.0 : Temp with (degrees::d) ; else : error "no"`, true},
		{`d > 0.0 : Temp with (degrees::d) ; d < -10.0 : error "no" ; else : Temp with (degrees::0.0)`, true},
		{`d > 0.0 : Temp with (degrees::d)`, false},
		{`d > 0.0 : Temp with (degrees::d) ; d < -10.0 : error "no"`, false},
		{`d`, false},
		{`d > 0.0 : d ; else : error "no"`, false},
		{`else : Temp with (degrees::d)`, true},
	}
	for i, test := range tests {
		code := "def\nTemp = class(degrees float)\nfactory Temp(d float) : " + test.body
		ids := errorIds(code)
		if test.ok && count(ids, "init/factory/return") > 0 {
			t.Errorf("tests[%d] - body %q was rejected", i, test.body)
		}
		if !test.ok && count(ids, "init/factory/return") == 0 {
			t.Errorf("tests[%d] - body %q was accepted, errors %v", i, test.body, ids)
		}
	}
}

func TestFieldTables(t *testing.T) {
	model, errors := Initialize("test", `def
Shape = class(color string)
Circle = class Shape(radius float, filled bool = false)`)
	if len(errors) > 0 {
		t.Fatalf("unexpected errors %v", errors)
	}
	ci, ok := model.Classes["Circle"]
	if !ok {
		t.Fatal("class Circle wasn't declared")
	}
	wantFields := []string{"color", "radius", "filled"}
	if len(ci.Fields) != len(wantFields) {
		t.Fatalf("wrong number of fields: expected %v, got %v", wantFields, ci.Fields)
	}
	for i, name := range wantFields {
		if ci.Fields[i].Name != name {
			t.Errorf("field %d: expected %q, got %q", i, name, ci.Fields[i].Name)
		}
	}
	if ci.Fields[2].Default == nil {
		t.Errorf("the default value of 'filled' wasn't evaluated")
	}
	if !model.Types.IsSameTypeOrSubtype("Circle", "Shape") {
		t.Errorf("Circle should be a subtype of Shape")
	}
	if model.ClassOf[ci.Type] != ci {
		t.Errorf("ClassOf doesn't round-trip for Circle")
	}
}

// Constants may be declared in any order, so long as there's no circle.
func TestConstantOrdering(t *testing.T) {
	model, errors := Initialize("test", `def
b = a + 1
a = 2`)
	if len(errors) > 0 {
		t.Fatalf("unexpected errors %v", errors)
	}
	v, ok := model.Constants["b"]
	if !ok {
		t.Fatal("constant b wasn't initialized")
	}
	if v.T != values.INT || v.V.(int) != 3 {
		t.Errorf("constant b: expected 3, got %v", v)
	}
}
