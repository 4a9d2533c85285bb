package parser

import (
	"github.com/veltlang/velt/internal/ast"
	"github.com/veltlang/velt/internal/diagnostics"
	"github.com/veltlang/velt/internal/lexer"
	"github.com/veltlang/velt/internal/token"
)

// MaxRecursionDepth bounds type expression nesting during parsing.
const MaxRecursionDepth = 200

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.Diagnostic
	depth  int
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Fill curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []*diagnostics.Diagnostic {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errors = append(p.errors, diagnostics.NewError(
		diagnostics.ErrP002, p.peekToken,
		"expected '%s', got '%s'", t, p.peekToken.Lexeme,
	))
	return false
}

func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram parses a sequence of alias declarations and bare type
// expressions separated by newlines.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			// Skip to the next line to avoid a cascade of errors.
			p.skipToLineEnd()
		}
		p.nextToken()
		p.skipNewlines()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	if p.curTokenIs(token.TYPE) {
		return p.parseTypeDecl()
	}

	tok := p.curToken
	t := p.parseType()
	if t == nil {
		return nil
	}
	return &ast.ExprStatement{Token: tok, Type: t}
}

// parseTypeDecl parses: type Name<P extends C, ...> = body
func (p *Parser) parseTypeDecl() ast.Statement {
	decl := &ast.TypeDecl{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.curToken.Literal

	if p.peekTokenIs(token.LT) {
		p.nextToken() // consume '<'
		params := p.parseTypeParams()
		if params == nil {
			return nil
		}
		decl.Params = params
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken() // move past '='

	body := p.parseType()
	if body == nil {
		return nil
	}
	decl.Body = body

	return decl
}

// parseTypeParams parses the list between '<' and '>' in an alias head.
// Called with curToken on '<'; returns with curToken on '>'.
func (p *Parser) parseTypeParams() []*ast.TypeParamDecl {
	var params []*ast.TypeParamDecl

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		param := &ast.TypeParamDecl{Token: p.curToken, Name: p.curToken.Literal}

		if p.peekTokenIs(token.EXTENDS) {
			p.nextToken() // consume 'extends'
			p.nextToken() // move to constraint
			constraint := p.parseType()
			if constraint == nil {
				return nil
			}
			param.Constraint = constraint
		}

		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.GT) {
		return nil
	}
	return params
}

func (p *Parser) skipToLineEnd() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}
