package ast

import (
	"github.com/veltlang/velt/internal/token"
)

// Node is the interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a top-level item in a program.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a sequence of alias declarations and bare type
// expressions to evaluate.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// TypeParamDecl is one parameter in an alias head: P or P extends C.
type TypeParamDecl struct {
	Token      token.Token // The parameter's IDENT token
	Name       string
	Constraint Type // nil when unconstrained
}

// TypeDecl is an alias declaration: type Name<P extends C, ...> = body
type TypeDecl struct {
	Token  token.Token // The 'type' token
	Name   string
	Params []*TypeParamDecl
	Body   Type
}

func (td *TypeDecl) statementNode()       {}
func (td *TypeDecl) TokenLiteral() string { return td.Token.Lexeme }

// ExprStatement is a bare type expression evaluated for its result.
type ExprStatement struct {
	Token token.Token
	Type  Type
}

func (es *ExprStatement) statementNode()       {}
func (es *ExprStatement) TokenLiteral() string { return es.Token.Lexeme }
