package parser

import (
	"github.com/tim-hardcastle/Minnow/source/digraph"
	"github.com/tim-hardcastle/Minnow/source/values"
)

// The TypeSystem keeps track of which type names exist and which are subtypes
// of which. The subtype relation is kept as a transitively closed digraph over
// the type names, so that asking whether one type is a subtype of another is
// a single lookup.
//
// The base types have no subtype relations among themselves: all the arrows
// in the digraph come from class declarations with superclasses, and it is
// the initializer's job to make sure the arrows it adds are acyclic before
// it adds them.

type TypeSystem struct {
	Tree     digraph.Digraph[string]
	numberOf map[string]values.ValueType
	nameOf   map[values.ValueType]string
	next     values.ValueType
}

// Cross-reference with the ValueType constants in the values package: the
// position of each name in this slice is its ValueType.
var typeNames = []string{"undefined value", "tuple", "error", "unsat", "int", "bool", "string", "float", "type", "list", "label"}

func NewTypeSystem() *TypeSystem {
	ts := &TypeSystem{
		Tree:     digraph.Digraph[string]{},
		numberOf: map[string]values.ValueType{},
		nameOf:   map[values.ValueType]string{},
		next:     values.LB_CLASSES,
	}
	for i, name := range typeNames {
		ts.nameOf[values.ValueType(i)] = name
		if values.ValueType(i) != values.UNDEFINED_VALUE {
			ts.numberOf[name] = values.ValueType(i)
			ts.Tree.Add(name, []string{})
		}
	}
	return ts
}

// Allocates a ValueType for a new class. The caller is responsible for
// checking that the name isn't taken.
func (ts *TypeSystem) AddClass(name string) values.ValueType {
	t := ts.next
	ts.next++
	ts.numberOf[name] = t
	ts.nameOf[t] = name
	ts.Tree.Add(name, []string{})
	return t
}

// Records that 'class' is a subclass of 'super'. Both must already be in the
// type system, and the caller must have established that adding the arrow
// doesn't create a cycle.
func (ts *TypeSystem) SetSuper(class, super string) {
	ts.Tree.AddTransitiveArrow(class, super)
}

func (ts *TypeSystem) TypeOf(name string) (values.ValueType, bool) {
	t, ok := ts.numberOf[name]
	return t, ok
}

func (ts *TypeSystem) NameOf(t values.ValueType) string {
	name, ok := ts.nameOf[t]
	if !ok {
		return "undefined value"
	}
	return name
}

// True if 'sub' names the same type as 'super' or a subtype of it.
func (ts *TypeSystem) IsSameTypeOrSubtype(sub, super string) bool {
	return sub == super || ts.Tree.PointsTo(sub, super)
}
