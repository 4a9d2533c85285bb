package ast

import (
	"github.com/veltlang/velt/internal/token"
)

// --- Type expression nodes ---

// Type represents a type expression node in the AST.
// E.g. Str, Box<Int>, A | B, [A, B], A extends B ? C : D
type Type interface {
	Node
	typeNode()
	GetToken() token.Token
}

// NamedType represents a named type like 'Str', a declared parameter like
// 'X', or an alias application like 'CheckNull<Str>'.
type NamedType struct {
	Token token.Token // The IDENT token
	Name  string
	Args  []Type
}

func (nt *NamedType) typeNode()             {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }

// UnionType represents a union type, e.g. Int | Str | Nil
type UnionType struct {
	Token token.Token // The first member's token
	Types []Type      // The types in the union (at least 2)
}

func (ut *UnionType) typeNode()             {}
func (ut *UnionType) TokenLiteral() string  { return ut.Token.Lexeme }
func (ut *UnionType) GetToken() token.Token { return ut.Token }

// TupleType represents a tuple type, e.g. [Int, Bool]
type TupleType struct {
	Token token.Token // The '[' token
	Types []Type
}

func (tt *TupleType) typeNode()             {}
func (tt *TupleType) TokenLiteral() string  { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token { return tt.Token }

// ConditionalType represents Check extends Extends ? True : False
type ConditionalType struct {
	Token   token.Token // The 'extends' token
	Check   Type
	Extends Type
	True    Type
	False   Type
}

func (ct *ConditionalType) typeNode()             {}
func (ct *ConditionalType) TokenLiteral() string  { return ct.Token.Lexeme }
func (ct *ConditionalType) GetToken() token.Token { return ct.Token }

// InferType represents an inference position in an extends clause: infer P
type InferType struct {
	Token token.Token // The 'infer' token
	Name  string
}

func (it *InferType) typeNode()             {}
func (it *InferType) TokenLiteral() string  { return it.Token.Lexeme }
func (it *InferType) GetToken() token.Token { return it.Token }

// NeverType represents the empty union keyword 'never'.
type NeverType struct {
	Token token.Token
}

func (nt *NeverType) typeNode()             {}
func (nt *NeverType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NeverType) GetToken() token.Token { return nt.Token }

// UnknownType represents the top type keyword 'unknown'.
type UnknownType struct {
	Token token.Token
}

func (ut *UnknownType) typeNode()             {}
func (ut *UnknownType) TokenLiteral() string  { return ut.Token.Lexeme }
func (ut *UnknownType) GetToken() token.Token { return ut.Token }
