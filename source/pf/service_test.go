package pf_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tim-hardcastle/Minnow/source/pf"
	"github.com/tim-hardcastle/Minnow/source/test_helper"
	"github.com/tim-hardcastle/Minnow/source/text"
)

func TestEvaluation(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `2 + 3 * 4`, Want: `14`},
		{Input: `10 / 3`, Want: `3`},
		{Input: `7 % 3`, Want: `1`},
		{Input: `2.5 + 1.5`, Want: `4.0`},
		{Input: `"foo" + "bar"`, Want: `"foobar"`},
		{Input: `not (1 == 2)`, Want: `true`},
		{Input: `2 < 3 and 3 < 4`, Want: `true`},
		{Input: `2 < 3 : "yes" ; else : "no"`, Want: `"yes"`},
		{Input: `(5)`, Want: `5`},
		{Input: `()`, Want: `()`},
		{Input: `(1, 2)`, Want: `(1, 2)`},
		{Input: `(1, (2, 3), 4)`, Want: `(1, 2, 3, 4)`},
		{Input: `(1, ())`, Want: `1`},
		{Input: `((), 5)`, Want: `5`},
		{Input: `(1, ()) == 1`, Want: `true`},
		{Input: `[1, 2, 3][1]`, Want: `2`},
		{Input: `[1, 2] == [1, 2]`, Want: `true`},
		{Input: `int`, Want: `int`},
	}
	test_helper.RunTest(t, "", tests, test_helper.TestValues)
}

func TestConstruction(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `ORIGIN`, Want: `Point with (x::0, y::0)`},
		{Input: `ORIGIN[x]`, Want: `0`},
		{Input: `Point with (x::1, y::2)`, Want: `Point with (x::1, y::2)`},
		{Input: `Point with (y::2, x::1)`, Want: `Point with (x::1, y::2)`},
		{Input: `Point with (x::1, y::2) == Point with (y::2, x::1)`, Want: `true`},
		{Input: `Circle with (color::"red", radius::2.5)`, Want: `Circle with (color::"red", radius::2.5, filled::false)`},
		{Input: `Circle with (color::"red", radius::2.5, filled::true)`, Want: `Circle with (color::"red", radius::2.5, filled::true)`},
		{Input: `(Circle with (color::"red", radius::2.5))[radius]`, Want: `2.5`},
		{Input: `Temperature with (degrees::20.0)`, Want: `Temperature with (degrees::20.0)`},
		{Input: `Angle with (turns::0.5)`, Want: `Angle with (degrees::180.0)`},
		{Input: `Drawing with (top::Shape with (color::"red"))`, Want: `Drawing with (top::Shape with (color::"red"), caption::"untitled")`},
		{Input: `(Drawing with (top::Circle with (color::"red", radius::1.0)))[top]`, Want: `Circle with (color::"red", radius::1.0, filled::false)`},
		{Input: `Badge with (c::"red")`, Want: `Shape with (color::"red")`},
		{Input: `Drawing with (top::Badge with (c::"red"))`, Want: `Drawing with (top::Shape with (color::"red"), caption::"untitled")`},
	}
	test_helper.RunTest(t, "construction.mnw", tests, test_helper.TestValues)
}

func TestRuntimeAndCheckerErrors(t *testing.T) {
	tests := []test_helper.TestItem{
		{Input: `wibble`, Want: `check/ident`},
		{Input: `1 / 0`, Want: `eval/div/int`},
		{Input: `[1][5]`, Want: `eval/index/range`},
		{Input: `1 + "two"`, Want: `check/op/type`},
		{Input: `3 < 2 : 1`, Want: `eval/unsatisfied`},
		{Input: `x::1`, Want: `check/pair`},
		{Input: `5 with (x::1)`, Want: `parse/with`},
		{Input: `Point with (x::1)`, Want: `init/construct/missing`},
		{Input: `Point with (x::1, y::2, z::3)`, Want: `init/construct/unknown`},
		{Input: `Point with (x::"one", y::2)`, Want: `init/construct/type`},
		{Input: `Point with (x::1, x::1, y::2)`, Want: `parse/record/duplicate`},
		{Input: `Shape with (color::"red", radius::1.0)`, Want: `init/construct/unknown`},
		{Input: `Temperature with (degrees::1)`, Want: `init/construct/type`},
		{Input: `Temperature with (degrees::-300.0)`, Want: `eval/user`},
		{Input: `Angle with (degrees::90.0)`, Want: `init/construct/unknown`},
		{Input: `Drawing with (top::ORIGIN)`, Want: `init/construct/type`},
		{Input: `Pin with (badge::Badge with (c::"red"))`, Want: `init/construct/type`},
	}
	test_helper.RunTest(t, "construction.mnw", tests, test_helper.TestErrors)
}

// When the checker has to let the field values through as unknown, a record
// mismatch is found at evaluation instead, and even then every bad field is
// reported, not just the first.
func TestRuntimeErrorReporting(t *testing.T) {
	service := pf.NewService()
	service.InitializeFromCode("def\nPoint = class(x int, y int)\n")
	if service.IsBroken() {
		t.Fatal("the service should have initialized: " + service.GetErrorReport())
	}
	_, errors := service.Do(`Point with (x::[1.5][0], y::[2.5][0])`)
	if len(errors) != 2 {
		t.Fatalf("expected both bad fields to be reported, got %v", errors)
	}
	for i, e := range errors {
		if e.ErrorId != "init/construct/type" {
			t.Errorf("errors[%d] - expected \"init/construct/type\", got %q", i, e.ErrorId)
		}
	}
}

func TestBrokenService(t *testing.T) {
	service := pf.NewService()
	service.InitializeFromCode("def\nPoint = class(x wibble)\n")
	if !service.IsBroken() {
		t.Fatal("the service should be broken")
	}
	if _, errors := service.Do(`2 + 2`); len(errors) == 0 || errors[0].ErrorId != "repl/check" {
		t.Errorf("a broken service should refuse to evaluate")
	}
}

func TestErrorReport(t *testing.T) {
	service := pf.NewService()
	service.InitializeFromCode("def\nPoint = class(x int, y int)\nPoint = class(z int)\nq = Point with (x::1)\n")
	if !service.IsBroken() {
		t.Fatal("the service should be broken")
	}
	g := goldie.New(t)
	g.Assert(t, "error_report", []byte(text.Plain(service.GetErrorReport())))
}
