package initializer

import (
	"github.com/tim-hardcastle/Minnow/source/ast"
	"github.com/tim-hardcastle/Minnow/source/dtypes"
	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/evaluator"
	"github.com/tim-hardcastle/Minnow/source/parser"
)

// The static checker. It walks an expression inferring the type of every
// subexpression, and complains about everything it can prove wrong: unknown
// names, misapplied operators, and above all records that don't fit the
// signatures they're matched against. Where it can't infer a type, it says
// so by the empty string, and lets the expression through: such things are
// the evaluator's problem.
//
// It accumulates all the errors it can find rather than stopping at the
// first one.

type checker struct {
	model  *evaluator.Model
	env    map[string]string // Names of constants and parameters, to the names of their types.
	rawFor string            // The class whose factory body we're checking, if any.
	errors err.Errors
}

// Checks an expression against a model and an environment of named, typed
// things. Returns the inferred type of the whole expression, or the empty
// string where no type can be inferred.
func CheckExpression(m *evaluator.Model, node ast.Node, env map[string]string, rawFor string) (string, err.Errors) {
	c := &checker{model: m, env: env, rawFor: rawFor, errors: err.Errors{}}
	t := c.infer(node)
	return t, c.errors
}

func (c *checker) throw(errorID string, node ast.Node, args ...any) {
	c.errors = append(c.errors, err.CreateErr(errorID, node.GetToken(), args...))
}

func (c *checker) infer(node ast.Node) string {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return "int"
	case *ast.FloatLiteral:
		return "float"
	case *ast.StringLiteral:
		return "string"
	case *ast.BooleanLiteral:
		return "bool"
	case *ast.Nothing:
		return "tuple"
	case *ast.ElseExpression:
		return "bool"
	case *ast.Identifier:
		if t, ok := c.env[node.Value]; ok {
			return t
		}
		if _, ok := c.model.Types.TypeOf(node.Value); ok {
			return "type"
		}
		c.throw("check/ident", node, node.Value)
		return ""
	case *ast.PrefixExpression:
		return c.inferPrefix(node)
	case *ast.InfixExpression:
		return c.inferInfix(node)
	case *ast.LazyInfixExpression:
		return c.inferLazyInfix(node)
	case *ast.ErrorExpression:
		t := c.infer(node.Message)
		if t != "" && t != "string" {
			c.throw("check/error/string", node, t)
		}
		return "error"
	case *ast.ListExpression:
		if node.List != nil {
			c.infer(node.List)
		}
		return "list"
	case *ast.IndexExpression:
		return c.inferIndex(node)
	case *ast.WithExpression:
		return c.inferWith(node)
	case *ast.PairExpression:
		c.throw("check/pair", node)
		return ""
	}
	panic("The checker was passed an unhandled node type. This is bad.")
}

func (c *checker) inferPrefix(node *ast.PrefixExpression) string {
	t := c.infer(node.Right)
	if node.Operator == "not" {
		if t != "" && t != "bool" {
			c.throw("check/prefix/type", node, "not", t)
		}
		return "bool"
	}
	if t == "" || t == "int" || t == "float" {
		return t
	}
	c.throw("check/prefix/type", node, node.Operator, t)
	return ""
}

func numeric(t string) bool {
	return t == "int" || t == "float"
}

func ordered(t string) bool {
	return t == "int" || t == "float" || t == "string"
}

func (c *checker) inferInfix(node *ast.InfixExpression) string {
	left := c.infer(node.Left)
	right := c.infer(node.Right)
	switch node.Operator {
	case ",":
		// The result could collapse to a bare value or even to nothing,
		// depending on what the operands flatten to.
		return ""
	case "==", "!=":
		if left != "" && right != "" && left != right {
			c.throw("check/op/type", node, node.Operator, left, right)
		}
		return "bool"
	case "<", ">", "<=", ">=":
		if left != "" && right != "" && !(left == right && ordered(left)) {
			c.throw("check/op/type", node, node.Operator, left, right)
		}
		return "bool"
	case "+":
		if left == "" || right == "" {
			return ""
		}
		if left == right && ordered(left) {
			return left
		}
		c.throw("check/op/type", node, node.Operator, left, right)
		return ""
	default: // The remaining arithmetic.
		if left == "" || right == "" {
			return ""
		}
		if left == right && numeric(left) && !(node.Operator == "%" && left == "float") {
			return left
		}
		c.throw("check/op/type", node, node.Operator, left, right)
		return ""
	}
}

func (c *checker) inferLazyInfix(node *ast.LazyInfixExpression) string {
	switch node.Operator {
	case "and", "or":
		left := c.infer(node.Left)
		right := c.infer(node.Right)
		if left != "" && right != "" && !(left == "bool" && right == "bool") {
			c.throw("check/op/type", node, node.Operator, left, right)
		}
		return "bool"
	case ":":
		if _, isElse := node.Left.(*ast.ElseExpression); !isElse {
			condition := c.infer(node.Left)
			if condition != "" && condition != "bool" {
				c.throw("check/cond/bool", node, condition)
			}
		}
		return c.infer(node.Right)
	default: // The ';' operator.
		left := c.infer(node.Left)
		right := c.infer(node.Right)
		if left == right {
			return left
		}
		return ""
	}
}

func (c *checker) inferIndex(node *ast.IndexExpression) string {
	left := c.infer(node.Left)
	if left == "list" {
		index := c.infer(node.Index)
		if index != "" && index != "int" {
			c.throw("check/index/list", node, index)
		}
		return ""
	}
	if ci, ok := c.model.Classes[left]; ok {
		label, isIdent := node.Index.(*ast.Identifier)
		if !isIdent {
			c.throw("check/index/instance", node, node.Index.String(), ci.Name)
			return ""
		}
		i := ci.Fields.IndexOf(label.Value)
		if i == -1 {
			c.throw("check/index/instance", node, label.Value, ci.Name)
			return ""
		}
		return ci.Fields[i].Type
	}
	if left == "" {
		// The index might be a field label of whatever the left turns out to
		// be, so there's nothing we can say about it either.
		if _, isIdent := node.Index.(*ast.Identifier); !isIdent {
			c.infer(node.Index)
		}
		return ""
	}
	c.throw("check/index/type", node, left)
	return ""
}

// Checks a creation call: that the thing named is a usable class, that the
// record is well-formed, and that it exactly fits the signature it resolves
// to, supplying each field or parameter once, with nothing missing that has
// no default, nothing unknown, and nothing of the wrong type. The type of the
// call is the class the resolved factory actually constructs, which is a
// superclass of the named one when the factory delegates.
func (c *checker) inferWith(node *ast.WithExpression) string {
	ci, ok := c.model.Classes[node.Name]
	if !ok {
		c.throw("check/with/type", node, node.Name)
		return ""
	}
	if ci.Broken {
		c.throw("init/class/broken", node, ci.Name)
		return ci.Name
	}
	entries, bad, ok := ast.GetRecordEntries(node.Right)
	if !ok {
		c.errors = append(c.errors, err.CreateErr("parse/record/pair", bad.GetToken()))
		return ci.Name
	}
	sig := ci.Fields
	constructs := ci.Name
	if c.rawFor != node.Name && ci.Factory != nil {
		sig = ci.Factory.Params
		constructs = ci.Factory.Constructs
	}
	seen := dtypes.Set[string]{}
	for _, entry := range entries {
		t := c.infer(entry.Value)
		if seen.Contains(entry.Label) {
			c.errors = append(c.errors, err.CreateErr("parse/record/duplicate", entry.Tok, entry.Label))
			continue
		}
		seen.Add(entry.Label)
		i := sig.IndexOf(entry.Label)
		if i == -1 {
			c.errors = append(c.errors, err.CreateErr("init/construct/unknown", entry.Tok, entry.Label, ci.Name))
			continue
		}
		if t != "" && !c.model.Types.IsSameTypeOrSubtype(t, sig[i].Type) {
			c.errors = append(c.errors, err.CreateErr("init/construct/type", entry.Tok, entry.Label, ci.Name, sig[i].Type, t))
		}
	}
	for _, param := range sig {
		if !seen.Contains(param.Name) && param.DefaultExpr == nil {
			c.throw("init/construct/missing", node, param.Name, ci.Name)
		}
	}
	return constructs
}

// The termination check on factory bodies: every path through the body must
// end in a construct call for the factory's class, which is the raw
// constructor, or for one of its superclasses, which delegates to that
// class's factory; or else in an error. A conditional can only deliver this
// if it ends with an 'else' clause which itself delivers it.
func factoryTerminates(body ast.Node, className string, ts *parser.TypeSystem) bool {
	switch body := body.(type) {
	case *ast.WithExpression:
		return ts.IsSameTypeOrSubtype(className, body.Name)
	case *ast.ErrorExpression:
		return true
	case *ast.LazyInfixExpression:
		switch body.Operator {
		case ";":
			return branchTerminates(body.Left, className, ts) && factoryTerminates(body.Right, className, ts)
		case ":":
			if _, isElse := body.Left.(*ast.ElseExpression); isElse {
				return factoryTerminates(body.Right, className, ts)
			}
			return false // A conditional with no 'else' leaves a path on which nothing is constructed.
		}
		return false
	}
	return false
}

// A clause in the middle of a chain of conditionals need only terminate when
// its condition is satisfied: the clauses after it catch the rest.
func branchTerminates(clause ast.Node, className string, ts *parser.TypeSystem) bool {
	if lazy, ok := clause.(*ast.LazyInfixExpression); ok && lazy.Operator == ":" {
		return factoryTerminates(lazy.Right, className, ts)
	}
	return factoryTerminates(clause, className, ts)
}

// Collects the classes named by the construct calls in terminal position,
// walking the body the same way the termination check does. The initializer
// uses this to work out which class a factory actually constructs.
func factoryTerminals(body ast.Node, result dtypes.Set[string]) {
	switch body := body.(type) {
	case *ast.WithExpression:
		result.Add(body.Name)
	case *ast.LazyInfixExpression:
		switch body.Operator {
		case ";":
			branchTerminals(body.Left, result)
			factoryTerminals(body.Right, result)
		case ":":
			if _, isElse := body.Left.(*ast.ElseExpression); isElse {
				factoryTerminals(body.Right, result)
			}
		}
	}
}

func branchTerminals(clause ast.Node, result dtypes.Set[string]) {
	if lazy, ok := clause.(*ast.LazyInfixExpression); ok && lazy.Operator == ":" {
		factoryTerminals(lazy.Right, result)
		return
	}
	factoryTerminals(clause, result)
}
