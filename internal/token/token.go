package token

import (
	"strings"

	"langgen/internal/langdef"
)

type Type string

type Token struct {
	Type Type
	// Literal is the token value; for strings it has quotes removed and escapes resolved.
	Literal string
	// Raw preserves the source lexeme.
	Raw  string
	Line int
	Col  int // 1-based byte column

	// Canonical ids, set only on keyword, builtin and operator tokens.
	Keyword  langdef.Keyword
	Builtin  langdef.Builtin
	Operator langdef.Operator
}

const (
	EOF Type = "EOF"

	IDENTIFIER Type = "IDENTIFIER"
	NUMBER     Type = "NUMBER"
	STRING     Type = "STRING"
	TRUE       Type = "TRUE"
	FALSE      Type = "FALSE"

	// Operators
	ASSIGN Type = "="
	PLUS   Type = "+"
	MINUS  Type = "-"
	STAR   Type = "*"
	SLASH  Type = "/"
	EQ     Type = "=="
	NE     Type = "!="
	LT     Type = "<"
	GT     Type = ">"
	LE     Type = "<="
	GE     Type = ">="
	AND    Type = "&&"
	OR     Type = "||"

	// Delimiters
	LPAREN Type = "("
	RPAREN Type = ")"
	LBRACE Type = "{"
	RBRACE Type = "}"
	COMMA  Type = ","
)

var operatorTypes = map[langdef.Operator]Type{
	langdef.OperatorAddition:       PLUS,
	langdef.OperatorSubtraction:    MINUS,
	langdef.OperatorMultiplication: STAR,
	langdef.OperatorDivision:       SLASH,
	langdef.OperatorEqual:          EQ,
	langdef.OperatorNotEqual:       NE,
	langdef.OperatorLessThan:       LT,
	langdef.OperatorGreaterThan:    GT,
	langdef.OperatorLessEqual:      LE,
	langdef.OperatorGreaterEqual:   GE,
	langdef.OperatorAnd:            AND,
	langdef.OperatorOr:             OR,
	langdef.OperatorAssign:         ASSIGN,
}

var delimiters = map[string]Type{
	"(": LPAREN,
	")": RPAREN,
	"{": LBRACE,
	"}": RBRACE,
	",": COMMA,
}

// KeywordType is the tag of a keyword token, e.g. KEYWORD_VARIABLE.
func KeywordType(k langdef.Keyword) Type {
	return Type("KEYWORD_" + strings.ToUpper(k.String()))
}

// BuiltinType is the tag of a builtin token, e.g. BUILTIN_PRINT.
func BuiltinType(b langdef.Builtin) Type {
	return Type("BUILTIN_" + strings.ToUpper(b.String()))
}

func OperatorType(op langdef.Operator) Type {
	return operatorTypes[op]
}

// LookupDelimiter maps a single delimiter character to its tag.
func LookupDelimiter(s string) (Type, bool) {
	t, ok := delimiters[s]
	return t, ok
}

func (t Token) IsKeyword(k langdef.Keyword) bool {
	return t.Keyword == k && k != langdef.KeywordNone
}

func (t Token) IsBuiltin() bool { return t.Builtin != langdef.BuiltinNone }
