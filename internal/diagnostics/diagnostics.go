package diagnostics

import (
	"fmt"

	"github.com/veltlang/velt/internal/token"
)

// Code identifies a diagnostic kind. L = lexical, P = parse, T = type
// declaration, E = engine.
type Code string

const (
	ErrL001 Code = "L001" // illegal character
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // expected a specific token
	ErrP003 Code = "P003" // expression too deeply nested
	ErrT001 Code = "T001" // unknown type alias
	ErrT002 Code = "T002" // wrong number of type arguments
	ErrT003 Code = "T003" // duplicate declaration
	ErrT004 Code = "T004" // infer outside an extends clause
	ErrE001 Code = "E001" // resolution engine error
)

// Diagnostic is a positioned, coded error produced by any stage.
type Diagnostic struct {
	Code    Code
	Message string
	File    string
	Line    int
	Column  int
}

func (d *Diagnostic) Error() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", d.File, d.Line, d.Column, d.Code, d.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", d.Line, d.Column, d.Code, d.Message)
}

// NewError builds a diagnostic at the given token's position.
func NewError(code Code, tok token.Token, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
