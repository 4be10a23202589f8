package parser

import (
	"strconv"

	"github.com/tim-hardcastle/Minnow/source/ast"
	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/lexer"
	"github.com/tim-hardcastle/Minnow/source/token"
)

// A Pratt parser. The Parser is handed the tokens of one declaration or one
// REPL line at a time: by the time it sees them, questions of how lines are
// joined up and which section of the script they belong to have already been
// settled.

const (
	_ int = iota
	LOWEST
	SEMICOLON   // ;
	COLON       // :
	COMMA       // ,
	OR          // or
	AND         // and
	EQUALS      // == or !=
	LESSGREATER // < or > or <= or >=
	PAIR        // ::
	WITH        // with
	SUM         // + or -
	PRODUCT     // * or / or %
	PREFIX      // -x or not x
	INDEX       // x[i]
)

var precedences = map[token.TokenType]int{
	token.SEMICOLON:   SEMICOLON,
	token.COLON:       COLON,
	token.COMMA:       COMMA,
	token.OR:          OR,
	token.AND:         AND,
	token.EQ:          EQUALS,
	token.NOT_EQ:      EQUALS,
	token.LT:          LESSGREATER,
	token.GT:          LESSGREATER,
	token.LEQ:         LESSGREATER,
	token.GEQ:         LESSGREATER,
	token.DOUBLECOLON: PAIR,
	token.WITH:        WITH,
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.ASTERISK:    PRODUCT,
	token.SLASH:       PRODUCT,
	token.PERCENT:     PRODUCT,
	token.LBRACK:      INDEX,
}

type Parser struct {
	tokens    []token.Token
	pos       int
	curToken  token.Token
	peekToken token.Token
	Errors    err.Errors

	prefixParseFns map[token.TokenType]func() ast.Node
	infixParseFns  map[token.TokenType]func(ast.Node) ast.Node
}

func New(tokens []token.Token) *Parser {
	p := &Parser{
		tokens: tokens,
		Errors: err.Errors{},
	}

	p.prefixParseFns = map[token.TokenType]func() ast.Node{
		token.IDENT:   p.parseIdentifier,
		token.INT:     p.parseIntegerLiteral,
		token.FLOAT:   p.parseFloatLiteral,
		token.STRING:  p.parseStringLiteral,
		token.TRUE:    p.parseBooleanLiteral,
		token.FALSE:   p.parseBooleanLiteral,
		token.MINUS:   p.parsePrefixExpression,
		token.NOT:     p.parsePrefixExpression,
		token.ELSE:    p.parseElseExpression,
		token.ERROR:   p.parseErrorExpression,
		token.LPAREN:  p.parseGroupedExpression,
		token.LBRACK:  p.parseListExpression,
		token.ILLEGAL: p.parseIllegalToken,
	}

	p.infixParseFns = map[token.TokenType]func(ast.Node) ast.Node{
		token.PLUS:        p.parseInfixExpression,
		token.MINUS:       p.parseInfixExpression,
		token.ASTERISK:    p.parseInfixExpression,
		token.SLASH:       p.parseInfixExpression,
		token.PERCENT:     p.parseInfixExpression,
		token.EQ:          p.parseInfixExpression,
		token.NOT_EQ:      p.parseInfixExpression,
		token.LT:          p.parseInfixExpression,
		token.GT:          p.parseInfixExpression,
		token.LEQ:         p.parseInfixExpression,
		token.GEQ:         p.parseInfixExpression,
		token.COMMA:       p.parseInfixExpression,
		token.AND:         p.parseLazyInfixExpression,
		token.OR:          p.parseLazyInfixExpression,
		token.COLON:       p.parseLazyInfixExpression,
		token.SEMICOLON:   p.parseLazyInfixExpression,
		token.DOUBLECOLON: p.parsePairExpression,
		token.WITH:        p.parseWithExpression,
		token.LBRACK:      p.parseIndexExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Lexes and parses one line as a single expression: what the REPL does with
// the things you type into it.
func ParseLine(source, input string) (ast.Node, err.Errors) {
	lex := lexer.New(source, input)
	tokens := []token.Token{}
	for tok := lex.NextToken(); tok.Type != token.EOF; tok = lex.NextToken() {
		if tok.Type == token.NEWLINE {
			continue
		}
		tokens = append(tokens, tok)
	}
	p := New(tokens)
	node := p.parseExpression(LOWEST)
	p.checkEnd()
	return node, err.MergeErrors(lex.GetErrors(), p.Errors)
}

// Parses the tokens as one declaration from the 'def' section of a script:
// a class, a factory, or a constant.
func (p *Parser) ParseDeclaration() ast.Node {
	var result ast.Node
	switch {
	case p.curToken.Type == token.FACTORY:
		result = p.parseFactoryDeclaration()
	case p.curToken.Type == token.IDENT && p.peekToken.Type == token.ASSIGN:
		result = p.parseAssignmentOrClass()
	default:
		p.Throw("parse/decl", p.curToken)
		return &ast.Nothing{Token: p.curToken}
	}
	p.checkEnd()
	return result
}

// Parses the tokens as a single expression, for the tests to use.
func (p *Parser) ParseExpression() ast.Node {
	result := p.parseExpression(LOWEST)
	p.checkEnd()
	return result
}

func (p *Parser) Throw(errorID string, tok token.Token, args ...any) {
	p.Errors = append(p.Errors, err.CreateErr(errorID, tok, args...))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.readToken()
}

func (p *Parser) readToken() token.Token {
	if p.pos >= len(p.tokens) {
		eof := token.Token{Type: token.EOF, Literal: "EOF"}
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			eof.Line, eof.ChStart, eof.ChEnd, eof.Source = last.Line, last.ChEnd, last.ChEnd, last.Source
		}
		return eof
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *Parser) peekPrecedence() int {
	if precedence, ok := precedences[p.peekToken.Type]; ok {
		return precedence
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if precedence, ok := precedences[p.curToken.Type]; ok {
		return precedence
	}
	return LOWEST
}

// Steps onto the peek token if it is of the given type, and otherwise
// complains, describing what it was hoping for.
func (p *Parser) expectPeek(t token.TokenType, description string) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.Throw("parse/expect", p.peekToken, description)
	return false
}

// After a whole declaration or line has been parsed, nothing should be left.
func (p *Parser) checkEnd() {
	if p.peekToken.Type != token.EOF {
		p.Throw("parse/expect", p.peekToken, "end of line")
	}
}

func (p *Parser) parseExpression(precedence int) ast.Node {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.Throw("parse/prefix", p.curToken)
		return &ast.Nothing{Token: p.curToken}
	}
	leftExp := prefix()
	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}
	return leftExp
}

func (p *Parser) parseIdentifier() ast.Node {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Node {
	value, e := strconv.Atoi(p.curToken.Literal)
	if e != nil {
		p.Throw("lex/number", p.curToken)
		return &ast.Nothing{Token: p.curToken}
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Node {
	value, e := strconv.ParseFloat(p.curToken.Literal, 64)
	if e != nil {
		p.Throw("lex/number", p.curToken)
		return &ast.Nothing{Token: p.curToken}
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Node {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Node {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parsePrefixExpression() ast.Node {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	return expression
}

func (p *Parser) parseElseExpression() ast.Node {
	return &ast.ElseExpression{Token: p.curToken}
}

func (p *Parser) parseErrorExpression() ast.Node {
	expression := &ast.ErrorExpression{Token: p.curToken}
	p.nextToken()
	expression.Message = p.parseExpression(PREFIX)
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Node {
	tok := p.curToken
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		return &ast.Nothing{Token: tok}
	}
	p.nextToken()
	expression := p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN, ")")
	return expression
}

func (p *Parser) parseListExpression() ast.Node {
	expression := &ast.ListExpression{Token: p.curToken}
	if p.peekToken.Type == token.RBRACK {
		p.nextToken()
		return expression
	}
	p.nextToken()
	expression.List = p.parseExpression(LOWEST)
	p.expectPeek(token.RBRACK, "]")
	return expression
}

// The lexer has already reported whatever it was that it didn't like.
func (p *Parser) parseIllegalToken() ast.Node {
	return &ast.Nothing{Token: p.curToken}
}

func (p *Parser) parseInfixExpression(left ast.Node) ast.Node {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseLazyInfixExpression(left ast.Node) ast.Node {
	expression := &ast.LazyInfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}
	precedence := p.curPrecedence()
	if p.curToken.Type == token.COLON || p.curToken.Type == token.SEMICOLON {
		precedence-- // Right-associative, so that 'a : b ; c : d' nests as it reads.
	}
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parsePairExpression(left ast.Node) ast.Node {
	expression := &ast.PairExpression{
		Token: p.curToken,
		Left:  left,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PAIR)
	return expression
}

func (p *Parser) parseWithExpression(left ast.Node) ast.Node {
	name, ok := left.(*ast.Identifier)
	if !ok {
		p.Throw("parse/with", p.curToken)
		return &ast.Nothing{Token: p.curToken}
	}
	expression := &ast.WithExpression{
		Token: p.curToken,
		Name:  name.Value,
	}
	p.nextToken()
	expression.Right = p.parseExpression(WITH)
	return expression
}

func (p *Parser) parseIndexExpression(left ast.Node) ast.Node {
	expression := &ast.IndexExpression{Token: p.curToken, Left: left}
	p.nextToken()
	expression.Index = p.parseExpression(LOWEST)
	p.expectPeek(token.RBRACK, "]")
	return expression
}

func (p *Parser) parseAssignmentOrClass() ast.Node {
	nameTok := p.curToken
	p.nextToken() // Onto the '='.
	assignTok := p.curToken
	p.nextToken() // Past it.
	if p.curToken.Type == token.CLASS {
		return p.parseClassDeclaration(nameTok.Literal)
	}
	right := p.parseExpression(LOWEST)
	return &ast.AssignmentExpression{
		Left:  &ast.Identifier{Token: nameTok, Value: nameTok.Literal},
		Right: right,
		Token: assignTok,
	}
}

func (p *Parser) parseClassDeclaration(name string) ast.Node {
	declaration := &ast.ClassDeclaration{Token: p.curToken, Name: name}
	if p.peekToken.Type == token.IDENT {
		p.nextToken()
		declaration.Super = p.curToken.Literal
	}
	if !p.expectPeek(token.LPAREN, "(") {
		return declaration
	}
	declaration.Sig = p.parseSignature()
	return declaration
}

func (p *Parser) parseFactoryDeclaration() ast.Node {
	declaration := &ast.FactoryDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT, "a class name") {
		return declaration
	}
	declaration.ClassName = p.curToken.Literal
	if !p.expectPeek(token.LPAREN, "(") {
		return declaration
	}
	declaration.Sig = p.parseSignature()
	if !p.expectPeek(token.COLON, ":") {
		return declaration
	}
	p.nextToken()
	declaration.Body = p.parseExpression(LOWEST)
	return declaration
}

// Parses a signature, '(x int, y int)', in which each entry may carry a
// default value, as in '(x int, y int, z int = 0)'. Called with the current
// token on the '(' and finishes with it on the ')'.
func (p *Parser) parseSignature() ast.AstSig {
	sig := ast.AstSig{}
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		return sig
	}
	for {
		if p.peekToken.Type != token.IDENT {
			p.Throw("parse/sig/a", p.peekToken)
			return sig
		}
		p.nextToken()
		name := p.curToken.Literal
		if p.peekToken.Type != token.IDENT {
			p.Throw("parse/sig/b", p.peekToken, name)
			return sig
		}
		p.nextToken()
		pair := ast.NameTypePair{VarName: name, VarType: p.curToken.Literal}
		if p.peekToken.Type == token.ASSIGN {
			p.nextToken()
			p.nextToken()
			pair.Default = p.parseExpression(COMMA)
		}
		sig = append(sig, pair)
		if p.peekToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		if p.peekToken.Type == token.RPAREN {
			p.nextToken()
			return sig
		}
		p.Throw("parse/sig/c", p.peekToken)
		return sig
	}
}
