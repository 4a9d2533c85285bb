package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	IDENT TokenType = "IDENT"

	// Keywords
	TYPE    TokenType = "TYPE"
	EXTENDS TokenType = "EXTENDS"
	INFER   TokenType = "INFER"
	NEVER   TokenType = "NEVER"
	UNKNOWN TokenType = "UNKNOWN"

	// Delimiters and operators
	ASSIGN   TokenType = "="
	PIPE     TokenType = "|"
	QUESTION TokenType = "?"
	COLON    TokenType = ":"
	COMMA    TokenType = ","
	LT       TokenType = "<"
	GT       TokenType = ">"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
)

var keywords = map[string]TokenType{
	"type":    TYPE,
	"extends": EXTENDS,
	"infer":   INFER,
	"never":   NEVER,
	"unknown": UNKNOWN,
}

// LookupIdent distinguishes keywords from plain identifiers.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}
