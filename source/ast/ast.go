package ast

import (
	"bytes"

	"github.com/tim-hardcastle/Minnow/source/token"
)

// The base Node interface
type Node interface {
	Children() []Node
	GetToken() token.Token
	String() string
}

// Nodes in alphabetical order. Other structures and functions are in a separate section at the bottom.

type AssignmentExpression struct {
	Left  Node
	Right Node
	Token token.Token
}

func (ae *AssignmentExpression) Children() []Node      { return []Node{ae.Left, ae.Right} }
func (ae *AssignmentExpression) GetToken() token.Token { return ae.Token }
func (ae *AssignmentExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ae.Left.String())
	out.WriteString(" = ")
	out.WriteString(ae.Right.String())
	out.WriteString(")")

	return out.String()
}

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Children() []Node      { return []Node{} }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }
func (b *BooleanLiteral) String() string        { return b.Token.Literal }

// A class declaration: 'Name = class(x int, y int)', or with a superclass,
// 'Name = class Super(z int)'. Fields may carry default expressions, which
// the signature keeps by position.
type ClassDeclaration struct {
	Token token.Token // The 'class' token.
	Name  string
	Super string // Empty if the class has no superclass.
	Sig   AstSig
}

func (cd *ClassDeclaration) Children() []Node      { return []Node{} }
func (cd *ClassDeclaration) GetToken() token.Token { return cd.Token }
func (cd *ClassDeclaration) String() string {
	result := cd.Name + " = class"
	if cd.Super != "" {
		result = result + " " + cd.Super
	}
	return result + cd.Sig.String()
}

// The 'else' in a conditional: syntactic sugar for a condition which is
// always satisfied.
type ElseExpression struct {
	Token token.Token
}

func (ee *ElseExpression) Children() []Node      { return []Node{} }
func (ee *ElseExpression) GetToken() token.Token { return ee.Token }
func (ee *ElseExpression) String() string        { return "else" }

// 'error "some message"', the explicit way for a script to reject its input.
type ErrorExpression struct {
	Token   token.Token
	Message Node
}

func (ee *ErrorExpression) Children() []Node      { return []Node{ee.Message} }
func (ee *ErrorExpression) GetToken() token.Token { return ee.Token }
func (ee *ErrorExpression) String() string        { return "error " + ee.Message.String() }

// An override factory: 'factory Name(theta float, radius float) : body'.
type FactoryDeclaration struct {
	Token     token.Token // The 'factory' token.
	ClassName string
	Sig       AstSig
	Body      Node
}

func (fd *FactoryDeclaration) Children() []Node      { return []Node{fd.Body} }
func (fd *FactoryDeclaration) GetToken() token.Token { return fd.Token }
func (fd *FactoryDeclaration) String() string {
	return "factory " + fd.ClassName + fd.Sig.String() + " : " + fd.Body.String()
}

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) Children() []Node      { return []Node{} }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }
func (fl *FloatLiteral) String() string        { return fl.Token.Literal }

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Children() []Node      { return []Node{} }
func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) String() string        { return i.Value }

type IndexExpression struct {
	Token token.Token // The [ token
	Left  Node
	Index Node
}

func (ie *IndexExpression) Children() []Node      { return []Node{ie.Left, ie.Index} }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }
func (ie *IndexExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString("[")
	out.WriteString(ie.Index.String())
	out.WriteString("])")

	return out.String()
}

type InfixExpression struct {
	Token    token.Token
	Operator string
	Left     Node
	Right    Node
}

func (ie *InfixExpression) Children() []Node      { return []Node{ie.Left, ie.Right} }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }
func (ie *InfixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ie.Left.String())
	if ie.Operator == "," {
		out.WriteString(", ")
	} else {
		out.WriteString(" " + ie.Operator + " ")
	}
	out.WriteString(ie.Right.String())
	out.WriteString(")")

	return out.String()
}

type IntegerLiteral struct {
	Token token.Token
	Value int
}

func (il *IntegerLiteral) Children() []Node      { return []Node{} }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }
func (il *IntegerLiteral) String() string        { return il.Token.Literal }

// For 'and', 'or', ':' and ';', which must not evaluate their right-hand side
// (nor, for ':' and ';', their left) before knowing whether they need to.
type LazyInfixExpression struct {
	Token    token.Token
	Operator string
	Left     Node
	Right    Node
}

func (ie *LazyInfixExpression) Children() []Node      { return []Node{ie.Left, ie.Right} }
func (ie *LazyInfixExpression) GetToken() token.Token { return ie.Token }
func (ie *LazyInfixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator + " ")
	out.WriteString(ie.Right.String())
	out.WriteString(")")

	return out.String()
}

type ListExpression struct {
	Token token.Token // The [ token
	List  Node        // Nil for the empty list.
}

func (le *ListExpression) Children() []Node {
	if le.List == nil {
		return []Node{}
	}
	return []Node{le.List}
}
func (le *ListExpression) GetToken() token.Token { return le.Token }
func (le *ListExpression) String() string {
	var out bytes.Buffer

	out.WriteString("[")
	if le.List != nil {
		out.WriteString(le.List.String())
	}
	out.WriteString("]")

	return out.String()
}

type Nothing struct {
	Token token.Token
}

func (ne *Nothing) Children() []Node      { return []Node{} }
func (ne *Nothing) GetToken() token.Token { return ne.Token }
func (ne *Nothing) String() string        { return "" }

// A record entry, 'label::value'.
type PairExpression struct {
	Token token.Token // The :: token
	Left  Node
	Right Node
}

func (pe *PairExpression) Children() []Node      { return []Node{pe.Left, pe.Right} }
func (pe *PairExpression) GetToken() token.Token { return pe.Token }
func (pe *PairExpression) String() string {
	return pe.Left.String() + "::" + pe.Right.String()
}

type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Node
}

func (pe *PrefixExpression) Children() []Node      { return []Node{pe.Right} }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }
func (pe *PrefixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(pe.Operator)
	if pe.Operator == "not" {
		out.WriteString(" ")
	}
	out.WriteString(pe.Right.String())
	out.WriteString(")")

	return out.String()
}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Children() []Node      { return []Node{} }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }
func (sl *StringLiteral) String() string        { return "\"" + sl.Token.Literal + "\"" }

// A creation call, 'Name with (record)'. Whether this resolves to the class's
// factory or, inside the body of that same factory, to the raw constructor,
// is the business of the factory resolution rules, not of the parser.
type WithExpression struct {
	Token token.Token // The 'with' token.
	Name  string      // The class name on the left.
	Right Node        // The record.
}

func (we *WithExpression) Children() []Node      { return []Node{we.Right} }
func (we *WithExpression) GetToken() token.Token { return we.Token }
func (we *WithExpression) String() string {
	return "(" + we.Name + " with " + we.Right.String() + ")"
}

// And other useful stuff.

// A record entry as the checker and the evaluator see it: the pair nodes
// slurped out of the comma-tree on the right-hand side of a 'with'.
type RecordEntry struct {
	Label string
	Value Node
	Tok   token.Token
}

// Flattens the right-hand side of a 'with' expression into its record
// entries. Returns ok == false, with the offending node, if any entry is not
// of the 'label::value' form.
func GetRecordEntries(n Node) (entries []RecordEntry, bad Node, ok bool) {
	switch n := n.(type) {
	case *Nothing:
		return []RecordEntry{}, nil, true
	case *InfixExpression:
		if n.Operator != "," {
			return nil, n, false
		}
		left, bad, ok := GetRecordEntries(n.Left)
		if !ok {
			return nil, bad, false
		}
		right, bad, ok := GetRecordEntries(n.Right)
		if !ok {
			return nil, bad, false
		}
		return append(left, right...), nil, true
	case *PairExpression:
		label, isIdent := n.Left.(*Identifier)
		if !isIdent {
			return nil, n.Left, false
		}
		return []RecordEntry{{Label: label.Value, Value: n.Right, Tok: n.Token}}, nil, true
	default:
		return nil, n, false
	}
}
