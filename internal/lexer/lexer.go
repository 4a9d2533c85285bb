package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/veltlang/velt/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	l.skipComment()

	var tok token.Token

	switch l.ch {
	case '\n':
		tok = newToken(token.NEWLINE, l.ch, l.line, l.column)
	case '=':
		tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
	case '|':
		tok = newToken(token.PIPE, l.ch, l.line, l.column)
	case '?':
		tok = newToken(token.QUESTION, l.ch, l.line, l.column)
	case ':':
		tok = newToken(token.COLON, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case '<':
		tok = newToken(token.LT, l.ch, l.line, l.column)
	case '>':
		tok = newToken(token.GT, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: l.line, Column: l.column}
	default:
		if isIdentStart(l.ch) {
			line, column := l.line, l.column
			ident := l.readIdentifier()
			return token.Token{
				Type:    token.LookupIdent(ident),
				Lexeme:  ident,
				Literal: ident,
				Line:    line,
				Column:  column,
			}
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment consumes a // line comment up to (not including) the newline.
func (l *Lexer) skipComment() {
	for l.ch == '/' && l.peekChar() == '/' {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		l.skipWhitespace()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func newToken(tokenType token.TokenType, ch rune, line, column int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}
