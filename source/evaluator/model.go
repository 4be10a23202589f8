package evaluator

import (
	"strconv"
	"strings"

	"github.com/tim-hardcastle/Minnow/source/ast"
	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/parser"
	"github.com/tim-hardcastle/Minnow/source/text"
	"github.com/tim-hardcastle/Minnow/source/token"
	"github.com/tim-hardcastle/Minnow/source/values"
)

// The Model is everything the initializer distills out of a script: the type
// system, the classes with their field tables and factories, and the
// constants. Once initialization is over it never changes, and evaluation
// consists of reading it.

type Model struct {
	Types     *parser.TypeSystem
	Classes   map[string]*ClassInfo
	ClassOf   map[values.ValueType]*ClassInfo
	Constants map[string]values.Value
}

func NewModel() *Model {
	return &Model{
		Types:     parser.NewTypeSystem(),
		Classes:   map[string]*ClassInfo{},
		ClassOf:   map[values.ValueType]*ClassInfo{},
		Constants: map[string]values.Value{},
	}
}

// A parameter of a signature: one field of a class, or one parameter of a
// factory. DefaultExpr is the default value as declared; Default is the
// same thing evaluated, which the initializer fills in.
type Param struct {
	Name        string
	Type        string
	DefaultExpr ast.Node
	Default     *values.Value
}

type Signature []Param

func (sig Signature) IndexOf(name string) int {
	for i, param := range sig {
		if param.Name == name {
			return i
		}
	}
	return -1
}

func (sig Signature) String() string {
	var out strings.Builder
	out.WriteString("(")
	for i, param := range sig {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(param.Name + " " + param.Type)
	}
	out.WriteString(")")
	return out.String()
}

type ClassInfo struct {
	Name    string
	Super   string // Empty if the class has no superclass.
	Type    values.ValueType
	Fields  Signature // Inherited fields first, in declaration order.
	Factory *Factory  // Nil if the class uses its default factory.
	Broken  bool
	Tok     token.Token
}

type Factory struct {
	ClassName string
	Params    Signature
	Body      ast.Node
	Tok       token.Token
	// The class an instance made through this factory actually belongs to:
	// the factory's own class, unless the body delegates to a superclass's
	// factory, in which case it is the topmost class the delegations reach.
	Constructs string
}

// Matches a record against a signature, filling in defaults, and returns the
// values in signature order. All the things wrong with the record are
// returned, not just the first.
func (m *Model) MatchRecord(sig Signature, rec *values.Record, className string, tok token.Token) ([]values.Value, err.Errors) {
	errors := err.Errors{}
	result := make([]values.Value, 0, len(sig))
	for _, param := range sig {
		v, ok := rec.Get(param.Name)
		if !ok {
			if param.Default != nil {
				result = append(result, *param.Default)
				continue
			}
			errors = append(errors, err.CreateErr("init/construct/missing", tok, param.Name, className))
			result = append(result, values.Value{})
			continue
		}
		vName := m.Types.NameOf(v.T)
		if !m.Types.IsSameTypeOrSubtype(vName, param.Type) {
			errors = append(errors, err.CreateErr("init/construct/type", tok, param.Name, className, param.Type, vName))
		}
		result = append(result, v)
	}
	for _, label := range rec.Labels().ToSortedSlice(func(a, b string) bool { return a < b }) {
		if sig.IndexOf(label) == -1 {
			errors = append(errors, err.CreateErr("init/construct/unknown", tok, label, className))
		}
	}
	return result, errors
}

// The raw constructor: matches the record against the field table and, if it
// fits, makes the instance. There is no way to make an instance other than
// through this function, and no way for this function to make a malformed
// instance.
func (m *Model) RawConstruct(ci *ClassInfo, rec *values.Record, tok token.Token) values.Value {
	fieldValues, errors := m.MatchRecord(ci.Fields, rec, ci.Name, tok)
	if len(errors) > 0 {
		return values.Value{T: values.ERROR, V: errors}
	}
	return values.Value{T: ci.Type, V: fieldValues}
}

// Renders a value the way the REPL shows it, which is also the way you would
// write it.
func (m *Model) Describe(v values.Value) string {
	switch v.T {
	case values.INT:
		return strconv.Itoa(v.V.(int))
	case values.FLOAT:
		result := strconv.FormatFloat(v.V.(float64), 'f', -1, 64)
		if !strings.ContainsRune(result, '.') {
			result = result + ".0"
		}
		return result
	case values.BOOL:
		if v.V.(bool) {
			return "true"
		}
		return "false"
	case values.STRING:
		return text.ToEscapedText(v.V.(string))
	case values.TYPE:
		return m.Types.NameOf(v.V.(values.ValueType))
	case values.LABEL:
		return v.V.(string)
	case values.TUPLE:
		elements := v.V.([]values.Value)
		result := make([]string, 0, len(elements))
		for _, e := range elements {
			result = append(result, m.Describe(e))
		}
		return "(" + strings.Join(result, ", ") + ")"
	case values.LIST:
		elements := values.ListElements(v)
		result := make([]string, 0, len(elements))
		for _, e := range elements {
			result = append(result, m.Describe(e))
		}
		return "[" + strings.Join(result, ", ") + "]"
	case values.ERROR:
		return "error: " + v.V.(err.Errors)[0].Message
	case values.UNSAT:
		return "unsatisfied conditional"
	}
	if ci, ok := m.ClassOf[v.T]; ok {
		fieldValues := v.V.([]values.Value)
		result := make([]string, 0, len(ci.Fields))
		for i, param := range ci.Fields {
			result = append(result, param.Name+"::"+m.Describe(fieldValues[i]))
		}
		return ci.Name + " with (" + strings.Join(result, ", ") + ")"
	}
	return "undefined value"
}

// Value equality, which for instances, tuples, and lists means equality of
// their parts.
func Equals(v, w values.Value) bool {
	if v.T != w.T {
		return false
	}
	switch v.T {
	case values.INT:
		return v.V.(int) == w.V.(int)
	case values.FLOAT:
		return v.V.(float64) == w.V.(float64)
	case values.BOOL:
		return v.V.(bool) == w.V.(bool)
	case values.STRING:
		return v.V.(string) == w.V.(string)
	case values.TYPE:
		return v.V.(values.ValueType) == w.V.(values.ValueType)
	case values.LABEL:
		return v.V.(string) == w.V.(string)
	case values.TUPLE:
		return slicesEqual(v.V.([]values.Value), w.V.([]values.Value))
	case values.LIST:
		return slicesEqual(values.ListElements(v), values.ListElements(w))
	case values.ERROR:
		return v.V.(err.Errors)[0].ErrorId == w.V.(err.Errors)[0].ErrorId
	case values.UNSAT:
		return true
	}
	return slicesEqual(v.V.([]values.Value), w.V.([]values.Value))
}

func slicesEqual(v, w []values.Value) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if !Equals(v[i], w[i]) {
			return false
		}
	}
	return true
}
