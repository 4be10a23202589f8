package err

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tim-hardcastle/Minnow/source/text"
	"github.com/tim-hardcastle/Minnow/source/token"
)

// The 'error' type.
type Error struct {
	ErrorId string
	Message string
	Args    []any
	Trace   []token.Token
	Token   token.Token
}

type Errors []*Error

type ErrorCreator struct {
	Message     func(tok token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok token.Token, args ...any) string
}

func (e *Error) AddToTrace(tok token.Token) {
	e.Trace = append(e.Trace, tok)
}

func CreateErr(ident string, tok token.Token, args ...any) *Error {
	errorCreator, ok := ErrorCreatorMap[ident]
	if !ok {
		panic("Tried to create an error with identifier " + ident + " which doesn't exist in the ErrorCreatorMap.")
	}
	return &Error{ErrorId: ident, Message: errorCreator.Message(tok, args...), Args: args, Token: tok}
}

func AddErr(e *Error, errors Errors, tok token.Token) Errors {
	e.AddToTrace(tok)
	return append(errors, e)
}

func MergeErrors(a, b Errors) Errors {
	result := append(Errors{}, a...)
	return append(result, b...)
}

// Produces the report the end-user sees when initialization or a REPL line
// fails: all of the errors, numbered, not just the first.
func GetList(errors Errors) string {
	var result strings.Builder
	result.WriteString("\n")
	for i, e := range errors {
		result.WriteString("[" + strconv.Itoa(i) + "] " + text.Red("Error") + ": " + e.Message + text.DescribePos(e.Token) + ".\n")
	}
	return result.String()
}

// A map from error identifiers to functions that supply the corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Major categories are check, eval, init, lex, parse, and repl.
//
// Two otherwise identical errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	// TEMPLATE
	"": {
		Message: func(tok token.Token, args ...any) string {
			return ""
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return ""
		},
	},

	"check/cond/bool": {
		Message: func(tok token.Token, args ...any) string {
			return "the condition before " + emph(":") + " should be of type " + emph("bool") + ", not " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "In a conditional of the form 'condition : result', the condition must be something that is either " +
				"true or false, so that Minnow can decide whether to evaluate the result."
		},
	},

	"check/error/string": {
		Message: func(tok token.Token, args ...any) string {
			return "the " + emph("error") + " keyword should be followed by a string, not a value of type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "An error is raised by writing " + emph("error") + " followed by a string saying what has gone wrong."
		},
	},

	"check/ident": {
		Message: func(tok token.Token, args ...any) string {
			return "unknown identifier " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "You have used a name which is neither a constant, nor a field label, nor a parameter of the factory you're writing, " +
				"so Minnow has no idea what you mean by it."
		},
	},

	"check/index/list": {
		Message: func(tok token.Token, args ...any) string {
			return "a list can only be indexed by an " + emph("int") + ", not by a value of type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Lists are indexed by position: 'myList[0]' is the first element of 'myList'."
		},
	},

	"check/index/instance": {
		Message: func(tok token.Token, args ...any) string {
			return emph(args[0]) + " is not a field label of class " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "An instance of a class is indexed only by its own field labels as given in the class definition."
		},
	},

	"check/index/type": {
		Message: func(tok token.Token, args ...any) string {
			return "a value of type " + emph(args[0]) + " can't be indexed"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The only things that can be indexed are lists, by position, and instances of classes, by field label."
		},
	},

	"check/op/type": {
		Message: func(tok token.Token, args ...any) string {
			return "the " + emph(args[0]) + " operator can't be applied to values of type " + emph(args[1]) + " and " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The operands of an operator have to be of the types it was defined on: you can't, for example, multiply strings."
		},
	},

	"check/pair": {
		Message: func(tok token.Token, args ...any) string {
			return "a " + emph("label::value") + " pair can only appear in the record of a " + emph("with") + " expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The " + emph("::") + " operator makes the entries of the records that instances are constructed from, " +
				"and that is all it does: a pair has no meaning anywhere else."
		},
	},

	"check/prefix/type": {
		Message: func(tok token.Token, args ...any) string {
			return "the " + emph(args[0]) + " operator can't be applied to a value of type " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The operand of an operator has to be of a type it was defined on: " + emph("-") + " applies to numbers, " +
				"and " + emph("not") + " to booleans."
		},
	},

	"check/with/type": {
		Message: func(tok token.Token, args ...any) string {
			return "the left-hand side of " + emph("with") + " should be the name of a class, not " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The only thing you can do with the " + emph("with") + " operator is construct an instance of a class " +
				"from a record of its fields, so the left-hand side must name a class."
		},
	},

	"eval/bool/and": {
		Message: func(tok token.Token, args ...any) string {
			return "the operands of " + emph("and") + " should be of type " + emph("bool") + ", not " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The " + emph("and") + " operator combines things that are true or false: it has no meaning on anything else."
		},
	},

	"eval/bool/cond": {
		Message: func(tok token.Token, args ...any) string {
			return "the condition before " + emph(":") + " evaluated to a value of type " + emph(args[0]) + ", not " + emph("bool")
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "In a conditional of the form 'condition : result', the condition must evaluate to something that is " +
				"either true or false, so that Minnow can decide whether to evaluate the result."
		},
	},

	"eval/bool/not": {
		Message: func(tok token.Token, args ...any) string {
			return emph("not") + " should be applied to a value of type " + emph("bool") + ", not " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The " + emph("not") + " operator negates things that are true or false: it has no meaning on anything else."
		},
	},

	"eval/bool/or": {
		Message: func(tok token.Token, args ...any) string {
			return "the operands of " + emph("or") + " should be of type " + emph("bool") + ", not " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The " + emph("or") + " operator combines things that are true or false: it has no meaning on anything else."
		},
	},

	"eval/div/float": {
		Message: func(tok token.Token, args ...any) string {
			return "division by zero"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Because 'x * 0.0 == y * 0.0' for any floating-point numbers 'x' and 'y', mathematicians consider the result of " +
				"dividing by 0.0 to be undefined: there is no right answer, because it's the wrong question. So Minnow throws " +
				"this error when you ask it."
		},
	},

	"eval/div/int": {
		Message: func(tok token.Token, args ...any) string {
			return "division by zero"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Because 'x * 0 == y * 0' for any integers 'x' and 'y', mathematicians consider the result of " +
				"dividing by zero to be undefined: there is no right answer, because it's the wrong question. So Minnow throws " +
				"this error when you ask it."
		},
	},

	"eval/index/range": {
		Message: func(tok token.Token, args ...any) string {
			return "index " + emph(args[0]) + " is out of range"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A list of length 'n' can be indexed only by numbers from '0' to 'n - 1' inclusive."
		},
	},

	"eval/minus/type": {
		Message: func(tok token.Token, args ...any) string {
			return emph("-") + " can't be applied to a value of type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The " + emph("-") + " operator negates numbers: it has no meaning on anything else."
		},
	},

	"eval/op/type": {
		Message: func(tok token.Token, args ...any) string {
			return "the " + emph(args[0]) + " operator can't be applied to values of type " + emph(args[1]) + " and " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The operands of an operator have to be of the types it was defined on: you can't, for example, multiply strings."
		},
	},

	"eval/unsatisfied": {
		Message: func(tok token.Token, args ...any) string {
			return "unsatisfied conditional"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A conditional expression was evaluated in which no condition was satisfied, and which had no " +
				emph("else") + " clause to fall back on, so there was nothing for it to evaluate to."
		},
	},

	"eval/user": {
		Message: func(tok token.Token, args ...any) string {
			return args[0].(string)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This is an error raised by the script you're running, not by Minnow itself, so you should " +
				"consult the author of the script about what it means."
		},
	},

	"init/class/broken": {
		Message: func(tok token.Token, args ...any) string {
			return "can't construct an instance of " + emph(args[0]) + " because its definition contains errors"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "When the definition of a class is itself erroneous, every attempt to construct an instance of " +
				"the class is erroneous too. Fix the definition and this error will go away."
		},
	},

	"init/class/cycle": {
		Message: func(tok token.Token, args ...any) string {
			return "the definition of class " + emph(args[0]) + " depends, directly or indirectly, on itself"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The superclass relationship must not contain cycles: if it did, the field table of each class " +
				"in the cycle could never be completed."
		},
	},

	"init/class/duplicate": {
		Message: func(tok token.Token, args ...any) string {
			return "field " + emph(args[0]) + " is declared twice in the definition of class " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Within one class the name of a field is its identity: declaring the same name twice would leave " +
				"Minnow with no way to tell the two fields apart."
		},
	},

	"init/class/exists": {
		Message: func(tok token.Token, args ...any) string {
			return "class " + emph(args[0]) + " already exists"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "You can't declare the same class twice."
		},
	},

	"init/class/inherit": {
		Message: func(tok token.Token, args ...any) string {
			return "class " + emph(args[0]) + " can't inherit from class " + emph(args[1]) + " because the definition of " + emph(args[1]) + " contains errors"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A class inherits the fields of its superclass, so until the superclass has a well-formed field table, " +
				"neither can the subclass. Fix the superclass and this error will go away."
		},
	},

	"init/class/redeclare": {
		Message: func(tok token.Token, args ...any) string {
			return "class " + emph(args[0]) + " redeclares field " + emph(args[1]) + " which it inherits from " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A class inherits all the fields of its superclass, so it must not declare a field of the same name: " +
				"if the declared type were different, the two declarations would contradict one another, and if it were " +
				"the same, the redeclaration would be pointless."
		},
	},

	"init/class/super": {
		Message: func(tok token.Token, args ...any) string {
			return "class " + emph(args[0]) + " has an undeclared superclass " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The superclass of a class must itself be declared as a class somewhere in the script."
		},
	},

	"init/class/type": {
		Message: func(tok token.Token, args ...any) string {
			return "field " + emph(args[0]) + " of class " + emph(args[1]) + " is declared with unknown type " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The type of a field must be one of the base types of Minnow, or a class declared somewhere in the script."
		},
	},

	"init/const/cycle": {
		Message: func(tok token.Token, args ...any) string {
			return "the definition of constant " + emph(args[0]) + " depends, directly or indirectly, on itself"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The declaration of each constant may use other constants, but not in a circle: somewhere there has " +
				"to be a constant Minnow can evaluate first."
		},
	},

	"init/const/exists": {
		Message: func(tok token.Token, args ...any) string {
			return "constant " + emph(args[0]) + " already exists"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "You can't declare the same constant twice."
		},
	},

	"init/const/name": {
		Message: func(tok token.Token, args ...any) string {
			return "constant " + emph(args[0]) + " has the same name as a type"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The types of Minnow, including the classes you declare, live in the same namespace as the constants, " +
				"so a constant can't reuse the name of one."
		},
	},

	"init/construct/missing": {
		Message: func(tok token.Token, args ...any) string {
			return "no value supplied for field " + emph(args[0]) + " of class " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "An instance of a class comes into existence with every one of its fields populated, and so the " +
				"record it is constructed from must supply a value for every field which doesn't have a default. " +
				"There is no such thing in Minnow as an uninitialized field: that's the point of Minnow."
		},
	},

	"init/construct/type": {
		Message: func(tok token.Token, args ...any) string {
			return "field " + emph(args[0]) + " of class " + emph(args[1]) + " requires a value of type " + emph(args[2]) +
				", but the value supplied is of type " + emph(args[3])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The values that can be put into an instance are constrained by the field types in the class definition."
		},
	},

	"init/construct/unknown": {
		Message: func(tok token.Token, args ...any) string {
			return emph(args[0]) + " is not a field of class " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The record from which an instance is constructed must supply exactly the fields of the class: " +
				"no fewer, and also no more. A label which isn't the name of any field is most likely a typo."
		},
	},

	"init/default/type": {
		Message: func(tok token.Token, args ...any) string {
			return "the default value of field " + emph(args[0]) + " of class " + emph(args[1]) + " is of type " + emph(args[2]) +
				", but the field is declared " + emph(args[3])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "When a field has a default value, the default is used to populate the field whenever a record " +
				"omits it, so it must be of the declared type of the field."
		},
	},

	"init/factory/class": {
		Message: func(tok token.Token, args ...any) string {
			return "declaration of a factory for unknown class " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A factory is declared for a class, so the name after the " + emph("factory") +
				" keyword must be the name of a class declared somewhere in the script."
		},
	},

	"init/factory/default": {
		Message: func(tok token.Token, args ...any) string {
			return "the default value of parameter " + emph(args[0]) + " of the factory for " + emph(args[1]) + " is of type " + emph(args[2]) +
				", but the parameter is declared " + emph(args[3])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "When a parameter has a default value, the default is used whenever a record omits the parameter, " +
				"so it must be of the declared type of the parameter."
		},
	},

	"init/factory/duplicate": {
		Message: func(tok token.Token, args ...any) string {
			return "parameter " + emph(args[0]) + " is declared twice in the factory for " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The parameters of a factory are identified by name, so declaring the same name twice would leave " +
				"Minnow with no way to tell the two parameters apart."
		},
	},

	"init/factory/exists": {
		Message: func(tok token.Token, args ...any) string {
			return "class " + emph(args[0]) + " already has a factory"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Each class has exactly one factory: the default one Minnow makes for it, or the one you declare " +
				"to replace the default. You can't declare two."
		},
	},

	"init/factory/return": {
		Message: func(tok token.Token, args ...any) string {
			return "a path through the factory for " + emph(args[0]) + " fails to construct an instance"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Every path through the body of a factory must end either by constructing an instance of its class, " +
				"with " + emph(args[0].(string)+" with (...)") + ", or by raising an error. A conditional with no " +
				emph("else") + " clause, or a clause which evaluates to anything else, leaves a path on which the " +
				"factory would return nothing, and there is no such thing as nothing."
		},
	},

	"init/factory/sig": {
		Message: func(tok token.Token, args ...any) string {
			return "parameter " + emph(args[0]) + " of the factory for " + emph(args[1]) + " is declared with unknown type " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The type of a factory parameter must be one of the base types of Minnow, or a class declared somewhere in the script."
		},
	},

	"init/head": {
		Message: func(tok token.Token, args ...any) string {
			return "script doesn't start with a headword"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A Minnow script is divided into sections by headwords, of which the only one so far is " + emph("def") +
				", so your script should start with one of those."
		},
	},

	"init/source/open": {
		Message: func(tok token.Token, args ...any) string {
			return "unable to get source " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This is an error the OS of your computer returned when Minnow tried to read the script. If you " +
				"aren't sure what it means, you should consult the documentation of your OS."
		},
	},

	"lex/ill": {
		Message: func(tok token.Token, args ...any) string {
			return "illegal character " + emph(tok.Literal)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This is a character which Minnow doesn't use for anything."
		},
	},

	"lex/number": {
		Message: func(tok token.Token, args ...any) string {
			return "can't make sense of " + emph(tok.Literal) + " as a number"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A numeric literal is either an integer like '42' or a float like '4.2'."
		},
	},

	"lex/quote": {
		Message: func(tok token.Token, args ...any) string {
			return "string unterminated by end of line"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Having begun a string with an opening quote, you should also supply it with a closing quote " +
				"before the end of the line."
		},
	},

	"parse/decl": {
		Message: func(tok token.Token, args ...any) string {
			return "can't make sense of the line as a declaration"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Each line of the " + emph("def") + " section of a script should declare a class, e.g. 'Point = class(x int, y int)'; " +
				"or a factory, e.g. 'factory Point(r float, theta float) : ...'; or a constant, e.g. 'ORIGIN = Point with (x::0, y::0)'."
		},
	},

	"parse/expect": {
		Message: func(tok token.Token, args ...any) string {
			return "expected " + emph(args[0]) + ", got " + emph(tok.Literal)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Minnow's parser was expecting one thing and got another: the expression it was reading is malformed at this point."
		},
	},

	"parse/prefix": {
		Message: func(tok token.Token, args ...any) string {
			return "can't parse " + emph(tok.Literal) + " at the start of an expression"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This token can't begin an expression, so Minnow can't make sense of what you've written."
		},
	},

	"parse/record/duplicate": {
		Message: func(tok token.Token, args ...any) string {
			return "the label " + emph(args[0]) + " occurs twice in the same record"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A record associates each label with one value: supplying two entries with the same label would be " +
				"at best redundant and at worst contradictory, so it is an error."
		},
	},

	"parse/record/pair": {
		Message: func(tok token.Token, args ...any) string {
			return "a record should consist of entries of the form " + emph("label::value")
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The record on the right-hand side of " + emph("with") + " is a comma-separated sequence of entries " +
				"each of the form 'label::value', e.g. '(x::1, y::2)'."
		},
	},

	"parse/sig/a": {
		Message: func(tok token.Token, args ...any) string {
			return "malformed signature: expected a name, got " + emph(tok.Literal)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A signature is a comma-separated sequence of entries of the form 'name type', e.g. '(x int, y int)'."
		},
	},

	"parse/sig/b": {
		Message: func(tok token.Token, args ...any) string {
			return "malformed signature: expected a type after " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A signature is a comma-separated sequence of entries of the form 'name type', e.g. '(x int, y int)'."
		},
	},

	"parse/sig/c": {
		Message: func(tok token.Token, args ...any) string {
			return "malformed signature: expected " + emph(",") + " or " + emph(")") + ", got " + emph(tok.Literal)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A signature is a comma-separated sequence of entries of the form 'name type', e.g. '(x int, y int)'."
		},
	},

	"parse/with": {
		Message: func(tok token.Token, args ...any) string {
			return "the left-hand side of " + emph("with") + " should be a class name"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The " + emph("with") + " operator constructs an instance of a class from a record of its fields, " +
				"so what comes before it must be the name of a class, e.g. 'Point with (x::1, y::2)'."
		},
	},

	"repl/check": {
		Message: func(tok token.Token, args ...any) string {
			return "the service is broken, so Minnow can't evaluate anything"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The script this service runs failed to initialize. Until the errors in it are fixed, the service " +
				"can't meaningfully evaluate anything you type into the REPL."
		},
	},
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}
