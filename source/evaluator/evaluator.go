package evaluator

import (
	"github.com/tim-hardcastle/Minnow/source/ast"
	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/token"
	"github.com/tim-hardcastle/Minnow/source/values"
)

// A tree-walking evaluator. By the time anything gets here it has been
// through the static checker, so most of what could go wrong already has:
// what is left is the things that can only be known at runtime, division by
// zero and indexes out of range and the types of things the checker had to
// let through as unknown.

type Context struct {
	Model  *Model
	Env    map[string]values.Value
	RawFor string // The class whose factory body we're evaluating, if any.
}

func Evaluate(node ast.Node, c *Context) values.Value {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return values.Value{T: values.INT, V: node.Value}
	case *ast.FloatLiteral:
		return values.Value{T: values.FLOAT, V: node.Value}
	case *ast.StringLiteral:
		return values.Value{T: values.STRING, V: node.Value}
	case *ast.BooleanLiteral:
		if node.Value {
			return values.TRUE
		}
		return values.FALSE
	case *ast.Identifier:
		if v, ok := c.Env[node.Value]; ok {
			return v
		}
		if t, ok := c.Model.Types.TypeOf(node.Value); ok {
			return values.Value{T: values.TYPE, V: t}
		}
		return throw("check/ident", node.Token, node.Value)
	case *ast.Nothing:
		return values.EMPTY_TUPLE
	case *ast.ElseExpression:
		return values.TRUE
	case *ast.PrefixExpression:
		return evalPrefixExpression(node, c)
	case *ast.InfixExpression:
		return evalInfixExpression(node, c)
	case *ast.LazyInfixExpression:
		return evalLazyInfixExpression(node, c)
	case *ast.ErrorExpression:
		return evalErrorExpression(node, c)
	case *ast.ListExpression:
		return evalListExpression(node, c)
	case *ast.IndexExpression:
		return evalIndexExpression(node, c)
	case *ast.WithExpression:
		return evalWithExpression(node, c)
	case *ast.PairExpression:
		return throw("check/pair", node.Token)
	}
	panic("Evaluate was passed an unhandled node type. This is bad.")
}

func throw(errorID string, tok token.Token, args ...any) values.Value {
	return values.Value{T: values.ERROR, V: err.Errors{err.CreateErr(errorID, tok, args...)}}
}

// Errors and unsatisfied conditionals can't be used as operands: the first
// propagates and the second becomes an error.
func unusable(v values.Value, tok token.Token) (values.Value, bool) {
	if v.T == values.ERROR {
		return v, true
	}
	if v.T == values.UNSAT {
		return throw("eval/unsatisfied", tok), true
	}
	return v, false
}

func evalPrefixExpression(node *ast.PrefixExpression, c *Context) values.Value {
	right := Evaluate(node.Right, c)
	if v, bad := unusable(right, node.Token); bad {
		return v
	}
	if node.Operator == "not" {
		if right.T != values.BOOL {
			return throw("eval/bool/not", node.Token, c.Model.Types.NameOf(right.T))
		}
		if right.V.(bool) {
			return values.FALSE
		}
		return values.TRUE
	}
	switch right.T {
	case values.INT:
		return values.Value{T: values.INT, V: -right.V.(int)}
	case values.FLOAT:
		return values.Value{T: values.FLOAT, V: -right.V.(float64)}
	}
	return throw("eval/minus/type", node.Token, c.Model.Types.NameOf(right.T))
}

func evalInfixExpression(node *ast.InfixExpression, c *Context) values.Value {
	left := Evaluate(node.Left, c)
	if node.Operator != "," { // A tuple may contain an unsatisfied conditional without this being an error.
		if v, bad := unusable(left, node.Token); bad {
			return v
		}
	} else if left.T == values.ERROR {
		return left
	}
	right := Evaluate(node.Right, c)
	if node.Operator != "," {
		if v, bad := unusable(right, node.Token); bad {
			return v
		}
	} else if right.T == values.ERROR {
		return right
	}
	switch node.Operator {
	case ",":
		elements := append(tupleElements(left), tupleElements(right)...)
		if len(elements) == 1 { // A one-element tuple is just its element.
			return elements[0]
		}
		return values.Value{T: values.TUPLE, V: elements}
	case "==":
		if Equals(left, right) {
			return values.TRUE
		}
		return values.FALSE
	case "!=":
		if Equals(left, right) {
			return values.FALSE
		}
		return values.TRUE
	}
	if left.T != right.T {
		return throw("eval/op/type", node.Token, node.Operator, c.Model.Types.NameOf(left.T), c.Model.Types.NameOf(right.T))
	}
	switch left.T {
	case values.INT:
		return evalIntegerInfix(node, left.V.(int), right.V.(int), c)
	case values.FLOAT:
		return evalFloatInfix(node, left.V.(float64), right.V.(float64), c)
	case values.STRING:
		return evalStringInfix(node, left.V.(string), right.V.(string), c)
	}
	return throw("eval/op/type", node.Token, node.Operator, c.Model.Types.NameOf(left.T), c.Model.Types.NameOf(right.T))
}

// Everything that evaluates to nothing is the empty tuple, so dropping a
// tuple's elements into an enclosing tuple is also what makes '(x, (), y)'
// equal '(x, y)'.
func tupleElements(v values.Value) []values.Value {
	if v.T == values.TUPLE {
		return v.V.([]values.Value)
	}
	if v.T == values.UNSAT {
		return []values.Value{}
	}
	return []values.Value{v}
}

func evalIntegerInfix(node *ast.InfixExpression, left, right int, c *Context) values.Value {
	switch node.Operator {
	case "+":
		return values.Value{T: values.INT, V: left + right}
	case "-":
		return values.Value{T: values.INT, V: left - right}
	case "*":
		return values.Value{T: values.INT, V: left * right}
	case "/":
		if right == 0 {
			return throw("eval/div/int", node.Token)
		}
		return values.Value{T: values.INT, V: left / right}
	case "%":
		if right == 0 {
			return throw("eval/div/int", node.Token)
		}
		return values.Value{T: values.INT, V: left % right}
	case "<":
		return boolValue(left < right)
	case ">":
		return boolValue(left > right)
	case "<=":
		return boolValue(left <= right)
	case ">=":
		return boolValue(left >= right)
	}
	return throw("eval/op/type", node.Token, node.Operator, "int", "int")
}

func evalFloatInfix(node *ast.InfixExpression, left, right float64, c *Context) values.Value {
	switch node.Operator {
	case "+":
		return values.Value{T: values.FLOAT, V: left + right}
	case "-":
		return values.Value{T: values.FLOAT, V: left - right}
	case "*":
		return values.Value{T: values.FLOAT, V: left * right}
	case "/":
		if right == 0 {
			return throw("eval/div/float", node.Token)
		}
		return values.Value{T: values.FLOAT, V: left / right}
	case "<":
		return boolValue(left < right)
	case ">":
		return boolValue(left > right)
	case "<=":
		return boolValue(left <= right)
	case ">=":
		return boolValue(left >= right)
	}
	return throw("eval/op/type", node.Token, node.Operator, "float", "float")
}

func evalStringInfix(node *ast.InfixExpression, left, right string, c *Context) values.Value {
	switch node.Operator {
	case "+":
		return values.Value{T: values.STRING, V: left + right}
	case "<":
		return boolValue(left < right)
	case ">":
		return boolValue(left > right)
	case "<=":
		return boolValue(left <= right)
	case ">=":
		return boolValue(left >= right)
	}
	return throw("eval/op/type", node.Token, node.Operator, "string", "string")
}

func boolValue(b bool) values.Value {
	if b {
		return values.TRUE
	}
	return values.FALSE
}

func evalLazyInfixExpression(node *ast.LazyInfixExpression, c *Context) values.Value {
	switch node.Operator {
	case "and":
		left := Evaluate(node.Left, c)
		if v, bad := unusable(left, node.Token); bad {
			return v
		}
		if left.T != values.BOOL {
			return throw("eval/bool/and", node.Token, c.Model.Types.NameOf(left.T))
		}
		if !left.V.(bool) {
			return values.FALSE
		}
		right := Evaluate(node.Right, c)
		if v, bad := unusable(right, node.Token); bad {
			return v
		}
		if right.T != values.BOOL {
			return throw("eval/bool/and", node.Token, c.Model.Types.NameOf(right.T))
		}
		return right
	case "or":
		left := Evaluate(node.Left, c)
		if v, bad := unusable(left, node.Token); bad {
			return v
		}
		if left.T != values.BOOL {
			return throw("eval/bool/or", node.Token, c.Model.Types.NameOf(left.T))
		}
		if left.V.(bool) {
			return values.TRUE
		}
		right := Evaluate(node.Right, c)
		if v, bad := unusable(right, node.Token); bad {
			return v
		}
		if right.T != values.BOOL {
			return throw("eval/bool/or", node.Token, c.Model.Types.NameOf(right.T))
		}
		return right
	case ":":
		condition := Evaluate(node.Left, c)
		if v, bad := unusable(condition, node.Token); bad {
			return v
		}
		if condition.T != values.BOOL {
			return throw("eval/bool/cond", node.Token, c.Model.Types.NameOf(condition.T))
		}
		if condition.V.(bool) {
			return Evaluate(node.Right, c)
		}
		return values.U_OBJ
	case ";":
		left := Evaluate(node.Left, c)
		if left.T == values.UNSAT {
			return Evaluate(node.Right, c)
		}
		return left
	}
	panic("evalLazyInfixExpression was passed an unhandled operator. This is bad.")
}

func evalErrorExpression(node *ast.ErrorExpression, c *Context) values.Value {
	message := Evaluate(node.Message, c)
	if v, bad := unusable(message, node.Token); bad {
		return v
	}
	if message.T != values.STRING {
		return throw("check/error/string", node.Token, c.Model.Types.NameOf(message.T))
	}
	return throw("eval/user", node.Token, message.V.(string))
}

func evalListExpression(node *ast.ListExpression, c *Context) values.Value {
	if node.List == nil {
		return values.NewList([]values.Value{})
	}
	contents := Evaluate(node.List, c)
	if v, bad := unusable(contents, node.Token); bad {
		return v
	}
	return values.NewList(tupleElements(contents))
}

func evalIndexExpression(node *ast.IndexExpression, c *Context) values.Value {
	left := Evaluate(node.Left, c)
	if v, bad := unusable(left, node.Token); bad {
		return v
	}
	if left.T == values.LIST {
		index := Evaluate(node.Index, c)
		if v, bad := unusable(index, node.Token); bad {
			return v
		}
		if index.T != values.INT {
			return throw("check/index/list", node.Token, c.Model.Types.NameOf(index.T))
		}
		element, ok := values.ListIndex(left, index.V.(int))
		if !ok {
			return throw("eval/index/range", node.Token, index.V.(int))
		}
		return element
	}
	if ci, ok := c.Model.ClassOf[left.T]; ok {
		label, isIdent := node.Index.(*ast.Identifier)
		if !isIdent {
			return throw("check/index/instance", node.Token, node.Index.String(), ci.Name)
		}
		i := ci.Fields.IndexOf(label.Value)
		if i == -1 {
			return throw("check/index/instance", node.Token, label.Value, ci.Name)
		}
		return left.V.([]values.Value)[i]
	}
	return throw("check/index/type", node.Token, c.Model.Types.NameOf(left.T))
}

// The factory resolution rules in their entirety: a 'with' expression uses
// the factory of the class it names, unless it names the very class whose
// factory body it occurs in, in which case it is the raw constructor. That
// is the only door into the raw constructor, and the factory body can't get
// out without going through it or raising an error.
func evalWithExpression(node *ast.WithExpression, c *Context) values.Value {
	ci, ok := c.Model.Classes[node.Name]
	if !ok {
		return throw("check/with/type", node.Token, node.Name)
	}
	if ci.Broken {
		return throw("init/class/broken", node.Token, ci.Name)
	}
	entries, bad, ok := ast.GetRecordEntries(node.Right)
	if !ok {
		return throw("parse/record/pair", bad.GetToken())
	}
	rec := values.NewRecord()
	for _, entry := range entries {
		v := Evaluate(entry.Value, c)
		if v, isBad := unusable(v, entry.Tok); isBad {
			return v
		}
		if !rec.Add(entry.Label, v) {
			return throw("parse/record/duplicate", entry.Tok, entry.Label)
		}
	}
	if c.RawFor == node.Name {
		return c.Model.RawConstruct(ci, rec, node.Token)
	}
	return applyFactory(ci, rec, node.Token, c)
}

func applyFactory(ci *ClassInfo, rec *values.Record, tok token.Token, c *Context) values.Value {
	if ci.Factory == nil {
		return c.Model.RawConstruct(ci, rec, tok)
	}
	paramValues, errors := c.Model.MatchRecord(ci.Factory.Params, rec, ci.Name, tok)
	if len(errors) > 0 {
		return values.Value{T: values.ERROR, V: errors}
	}
	env := make(map[string]values.Value, len(c.Model.Constants)+len(paramValues))
	for k, v := range c.Model.Constants {
		env[k] = v
	}
	for i, param := range ci.Factory.Params {
		env[param.Name] = paramValues[i]
	}
	result := Evaluate(ci.Factory.Body, &Context{Model: c.Model, Env: env, RawFor: ci.Name})
	if result.T == values.ERROR {
		for _, e := range result.V.(err.Errors) {
			e.AddToTrace(tok)
		}
	}
	if result.T == values.UNSAT {
		return throw("eval/unsatisfied", tok)
	}
	return result
}
