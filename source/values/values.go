package values

type ValueType uint32

const ( // Cross-reference with typeNames in parser.NewTypeSystem().
	UNDEFINED_VALUE ValueType = iota // For debugging purposes, it is useful to have the zero value something it should never actually be.
	TUPLE
	ERROR
	UNSAT // An unsatisfied conditional.
	INT
	BOOL
	STRING
	FLOAT
	TYPE
	LIST
	LABEL
	LB_CLASSES // I.e. the first of the class types.
)

type Value struct {
	T ValueType
	V any
}

var (
	FALSE = Value{T: BOOL, V: false}
	TRUE  = Value{T: BOOL, V: true}
	U_OBJ = Value{T: UNSAT}
)

// The tuple of length zero. There is only one, in the same sense that there
// is only one empty set: every tuple expression that evaluates to nothing
// evaluates to this.
var EMPTY_TUPLE = Value{T: TUPLE, V: []Value{}}
