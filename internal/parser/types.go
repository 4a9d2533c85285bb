package parser

import (
	"github.com/veltlang/velt/internal/ast"
	"github.com/veltlang/velt/internal/diagnostics"
	"github.com/veltlang/velt/internal/token"
)

// parseType parses a full type expression. The conditional form binds
// loosest: 'A | B extends C ? T : F' conditions on the whole union.
func (p *Parser) parseType() ast.Type {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP003, p.curToken,
			"type expression too complex: recursion depth limit exceeded",
		))
		return nil
	}

	t := p.parseUnionType()
	if t == nil {
		return nil
	}

	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken() // consume 'extends'
		extendsTok := p.curToken
		p.nextToken() // move to extends type

		extendsType := p.parseUnionType()
		if extendsType == nil {
			return nil
		}
		if !p.expectPeek(token.QUESTION) {
			return nil
		}
		p.nextToken() // move past '?'
		trueType := p.parseType()
		if trueType == nil {
			return nil
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken() // move past ':'
		falseType := p.parseType()
		if falseType == nil {
			return nil
		}

		return &ast.ConditionalType{
			Token:   extendsTok,
			Check:   t,
			Extends: extendsType,
			True:    trueType,
			False:   falseType,
		}
	}

	return t
}

// parseUnionType parses 'primary (| primary)*'.
func (p *Parser) parseUnionType() ast.Type {
	t := p.parsePrimaryType()
	if t == nil {
		return nil
	}

	if !p.peekTokenIs(token.PIPE) {
		return t
	}

	types := []ast.Type{t}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken() // consume '|'
		p.nextToken() // move to next type
		next := p.parsePrimaryType()
		if next == nil {
			return nil
		}
		types = append(types, next)
	}
	return &ast.UnionType{Token: t.GetToken(), Types: types}
}

func (p *Parser) parsePrimaryType() ast.Type {
	switch p.curToken.Type {
	case token.IDENT:
		return p.parseNamedType()
	case token.NEVER:
		return &ast.NeverType{Token: p.curToken}
	case token.UNKNOWN:
		return &ast.UnknownType{Token: p.curToken}
	case token.INFER:
		tok := p.curToken
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		return &ast.InferType{Token: tok, Name: p.curToken.Literal}
	case token.LBRACKET:
		return p.parseTupleType()
	case token.LPAREN:
		p.nextToken() // move past '('
		t := p.parseType()
		if t == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return t
	case token.ILLEGAL:
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrL001, p.curToken,
			"illegal character '%s'", p.curToken.Lexeme,
		))
		return nil
	default:
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP001, p.curToken,
			"unexpected token '%s' in type expression", p.curToken.Lexeme,
		))
		return nil
	}
}

// parseNamedType parses 'Name' or an application 'Name<Arg, ...>'.
func (p *Parser) parseNamedType() ast.Type {
	nt := &ast.NamedType{Token: p.curToken, Name: p.curToken.Literal}

	if !p.peekTokenIs(token.LT) {
		return nt
	}
	p.nextToken() // consume '<'

	for {
		p.nextToken() // move to argument
		arg := p.parseType()
		if arg == nil {
			return nil
		}
		nt.Args = append(nt.Args, arg)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.GT) {
		return nil
	}
	return nt
}

// parseTupleType parses '[A, B, ...]' including the empty tuple '[]'.
func (p *Parser) parseTupleType() ast.Type {
	tt := &ast.TupleType{Token: p.curToken}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return tt
	}

	for {
		p.nextToken() // move to element
		el := p.parseType()
		if el == nil {
			return nil
		}
		tt.Types = append(tt.Types, el)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return tt
}
