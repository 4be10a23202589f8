package values

import (
	"src.elv.sh/pkg/persistent/vector"
)

// Lists are backed by persistent vectors, so that they can be passed around
// and stored in instances without anyone being able to mutate them behind
// anyone else's back.

func NewList(elements []Value) Value {
	vec := vector.Empty
	for _, e := range elements {
		vec = vec.Conj(e)
	}
	return Value{T: LIST, V: vec}
}

func ListIndex(v Value, i int) (Value, bool) {
	el, ok := v.V.(vector.Vector).Index(i)
	if !ok {
		return Value{}, false
	}
	return el.(Value), true
}

func ListElements(v Value) []Value {
	vec := v.V.(vector.Vector)
	result := make([]Value, 0, vec.Len())
	for it := vec.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Value))
	}
	return result
}
