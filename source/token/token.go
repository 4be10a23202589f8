package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // add, foobar, x, y, ...
	INT    = "int"    // 1343456
	FLOAT  = "float"  // 1.23
	STRING = "string" // "foo"
	TRUE   = "true"
	FALSE  = "false"

	// Operators
	ASSIGN = "="

	COLON       = ":"
	DOUBLECOLON = "::"
	NEWLINE     = "\n"
	SEMICOLON   = ";"

	AND = "and"
	OR  = "or"
	NOT = "not"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LEQ    = "<="
	GEQ    = ">="

	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"

	COMMA = ","

	LPAREN = "("
	RPAREN = ")"
	LBRACK = "["
	RBRACK = "]"

	// Headwords

	DEF = "def"

	// Keywords
	CLASS   = "class"
	FACTORY = "factory"
	WITH    = "with"
	ERROR   = "error"
	ELSE    = "else"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,

	"def": DEF,

	"class":   CLASS,
	"factory": FACTORY,
	"with":    WITH,
	"error":   ERROR,
	"else":    ELSE,

	"and": AND,
	"or":  OR,
	"not": NOT,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

func TokenTypeIsHeadword(t TokenType) bool {
	return t == DEF
}
