package lexer

import (
	"strings"
	"unicode"

	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/token"
)

// Minnow's lexer is a plain one: a script is a sequence of newline-terminated
// declarations, and continuation onto further lines is achieved by leaving a
// parenthesis open, which is the parser's business to notice. So unlike some
// of its relatives the lexer doesn't have to interpret whitespace, and just
// turns runes into tokens.

type Lexer struct {
	runes  []rune
	pos    int // Position of the current rune in runes.
	lineNo int
	chNo   int // Position of the current rune within its line.
	Ers    err.Errors
	source string
}

func New(source, input string) *Lexer {
	l := &Lexer{
		runes:  []rune(input),
		lineNo: 1,
		chNo:   1,
		Ers:    err.Errors{},
		source: source,
	}
	return l
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()
	switch ch := l.currentRune(); {
	case ch == 0:
		return l.newToken(token.EOF, "EOF")
	case ch == '\n':
		tok := l.newToken(token.NEWLINE, ";")
		l.next()
		l.lineNo++
		l.chNo = 1
		return tok
	case ch == ';':
		return l.emit(token.SEMICOLON, ";")
	case ch == ':':
		if l.peekRune() == ':' {
			return l.emit(token.DOUBLECOLON, "::")
		}
		return l.emit(token.COLON, ":")
	case ch == '=':
		if l.peekRune() == '=' {
			return l.emit(token.EQ, "==")
		}
		return l.emit(token.ASSIGN, "=")
	case ch == '!':
		if l.peekRune() == '=' {
			return l.emit(token.NOT_EQ, "!=")
		}
		return l.throw("lex/ill", "!")
	case ch == '<':
		if l.peekRune() == '=' {
			return l.emit(token.LEQ, "<=")
		}
		return l.emit(token.LT, "<")
	case ch == '>':
		if l.peekRune() == '=' {
			return l.emit(token.GEQ, ">=")
		}
		return l.emit(token.GT, ">")
	case ch == '+':
		return l.emit(token.PLUS, "+")
	case ch == '-':
		return l.emit(token.MINUS, "-")
	case ch == '*':
		return l.emit(token.ASTERISK, "*")
	case ch == '/':
		return l.emit(token.SLASH, "/")
	case ch == '%':
		return l.emit(token.PERCENT, "%")
	case ch == ',':
		return l.emit(token.COMMA, ",")
	case ch == '(':
		return l.emit(token.LPAREN, "(")
	case ch == ')':
		return l.emit(token.RPAREN, ")")
	case ch == '[':
		return l.emit(token.LBRACK, "[")
	case ch == ']':
		return l.emit(token.RBRACK, "]")
	case ch == '"':
		return l.readString()
	case unicode.IsDigit(ch):
		return l.readNumber()
	case isLetter(ch):
		return l.readIdentifier()
	default:
		return l.throw("lex/ill", string(ch))
	}
}

func (l *Lexer) currentRune() rune {
	if l.pos >= len(l.runes) {
		return 0
	}
	return l.runes[l.pos]
}

func (l *Lexer) peekRune() rune {
	if l.pos+1 >= len(l.runes) {
		return 0
	}
	return l.runes[l.pos+1]
}

func (l *Lexer) next() {
	l.pos++
	l.chNo++
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		ch := l.currentRune()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.next()
			continue
		}
		if ch == '/' && l.peekRune() == '/' {
			for l.currentRune() != '\n' && l.currentRune() != 0 {
				l.next()
			}
			continue
		}
		return
	}
}

// Makes a token out of the current rune and steps over it.
func (l *Lexer) emit(tokenType token.TokenType, literal string) token.Token {
	tok := l.newToken(tokenType, literal)
	for range literal {
		l.next()
	}
	tok.ChEnd = l.chNo - 1
	return tok
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: l.lineNo,
		ChStart: l.chNo - 1, ChEnd: l.chNo - 1, Source: l.source}
}

func (l *Lexer) readIdentifier() token.Token {
	start := l.pos
	for isLetter(l.currentRune()) || unicode.IsDigit(l.currentRune()) {
		l.next()
	}
	literal := string(l.runes[start:l.pos])
	tok := l.newToken(token.LookupIdent(literal), literal)
	tok.ChStart = tok.ChEnd - len(literal)
	return tok
}

func (l *Lexer) readNumber() token.Token {
	start := l.pos
	isFloat := false
	for unicode.IsDigit(l.currentRune()) {
		l.next()
	}
	if l.currentRune() == '.' && unicode.IsDigit(l.peekRune()) {
		isFloat = true
		l.next()
		for unicode.IsDigit(l.currentRune()) {
			l.next()
		}
	}
	literal := string(l.runes[start:l.pos])
	if isLetter(l.currentRune()) { // E.g. '42abc' is not a number, and not two things either.
		for isLetter(l.currentRune()) || unicode.IsDigit(l.currentRune()) {
			l.next()
		}
		return l.throw("lex/number", string(l.runes[start:l.pos]))
	}
	var tok token.Token
	if isFloat {
		tok = l.newToken(token.FLOAT, literal)
	} else {
		tok = l.newToken(token.INT, literal)
	}
	tok.ChStart = tok.ChEnd - len(literal)
	return tok
}

func (l *Lexer) readString() token.Token {
	// The span has to be measured from here, at the opening quote: escapes
	// and wide runes mean it can't be recovered from the literal afterwards.
	chStart := l.chNo - 1
	l.next() // Step over the opening quote.
	var result strings.Builder
	for {
		ch := l.currentRune()
		if ch == 0 || ch == '\n' {
			return l.throw("lex/quote", result.String())
		}
		if ch == '"' {
			l.next()
			break
		}
		if ch == '\\' {
			switch l.peekRune() {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			case '"':
				result.WriteRune('"')
			default:
				result.WriteRune(l.peekRune())
			}
			l.next()
			l.next()
			continue
		}
		result.WriteRune(ch)
		l.next()
	}
	tok := l.newToken(token.STRING, result.String())
	tok.ChStart = chStart
	return tok
}

func (l *Lexer) throw(errorID string, literal string) token.Token {
	tok := l.newToken(token.ILLEGAL, literal)
	l.next()
	l.Ers = append(l.Ers, err.CreateErr(errorID, tok))
	tok.Literal = errorID
	return tok
}

func (l *Lexer) GetErrors() err.Errors {
	return l.Ers
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '\''
}
