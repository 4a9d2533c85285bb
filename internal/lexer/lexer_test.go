package lexer

import (
	"testing"

	"github.com/veltlang/velt/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `type IsStr<X extends unknown> = X extends Str ? True : False
[infer A, never] | (B)
// a comment line
Rest`

	tests := []struct {
		wantType   token.TokenType
		wantLexeme string
	}{
		{token.TYPE, "type"},
		{token.IDENT, "IsStr"},
		{token.LT, "<"},
		{token.IDENT, "X"},
		{token.EXTENDS, "extends"},
		{token.UNKNOWN, "unknown"},
		{token.GT, ">"},
		{token.ASSIGN, "="},
		{token.IDENT, "X"},
		{token.EXTENDS, "extends"},
		{token.IDENT, "Str"},
		{token.QUESTION, "?"},
		{token.IDENT, "True"},
		{token.COLON, ":"},
		{token.IDENT, "False"},
		{token.NEWLINE, "\n"},
		{token.LBRACKET, "["},
		{token.INFER, "infer"},
		{token.IDENT, "A"},
		{token.COMMA, ","},
		{token.NEVER, "never"},
		{token.RBRACKET, "]"},
		{token.PIPE, "|"},
		{token.LPAREN, "("},
		{token.IDENT, "B"},
		{token.RPAREN, ")"},
		{token.NEWLINE, "\n"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "Rest"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("tests[%d] - wrong type. expected=%q, got=%q (lexeme %q)", i, tt.wantType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.wantLexeme {
			t.Fatalf("tests[%d] - wrong lexeme. expected=%q, got=%q", i, tt.wantLexeme, tok.Lexeme)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	input := "type A\nB"

	l := New(input)

	tests := []struct {
		wantLine   int
		wantColumn int
	}{
		{1, 1}, // type
		{1, 6}, // A
		{1, 7}, // newline
		{2, 1}, // B
	}
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Line != tt.wantLine || tok.Column != tt.wantColumn {
			t.Errorf("tests[%d] - position %d:%d, expected %d:%d (token %q)",
				i, tok.Line, tok.Column, tt.wantLine, tt.wantColumn, tok.Lexeme)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Errorf("expected ILLEGAL, got %q", tok.Type)
	}
}

func TestCommentOnlyInput(t *testing.T) {
	l := New("// nothing here")
	tok := l.NextToken()
	if tok.Type != token.EOF {
		t.Errorf("expected EOF after a comment-only input, got %q (%q)", tok.Type, tok.Lexeme)
	}
}
