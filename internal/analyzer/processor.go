package analyzer

import (
	"github.com/veltlang/velt/internal/ast"
	"github.com/veltlang/velt/internal/diagnostics"
	"github.com/veltlang/velt/internal/pipeline"
	"github.com/veltlang/velt/internal/typesystem"
)

// Processor is the evaluation stage: it declares aliases and evaluates bare
// type expressions through the resolution engine.
type Processor struct{}

func (ap *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	b := NewBuilder(ctx.Symbols, ctx.Engine)

	for _, stmt := range ctx.AstRoot.Statements {
		switch stmt := stmt.(type) {
		case *ast.TypeDecl:
			if err := ap.declare(b, stmt, ctx); err != nil {
				ctx.Errors = append(ctx.Errors, err)
			}
		case *ast.ExprStatement:
			ap.evaluate(b, stmt, ctx)
		}
	}

	return ctx
}

func (ap *Processor) declare(b *Builder, decl *ast.TypeDecl, ctx *pipeline.PipelineContext) *diagnostics.Diagnostic {
	err := b.Declare(decl)
	if err == nil {
		return nil
	}
	if d, ok := err.(*diagnostics.Diagnostic); ok {
		d.File = ctx.FilePath
		return d
	}
	d := diagnostics.NewError(diagnostics.ErrE001, decl.Token, "%s", err.Error())
	d.File = ctx.FilePath
	return d
}

func (ap *Processor) evaluate(b *Builder, stmt *ast.ExprStatement, ctx *pipeline.PipelineContext) {
	t, err := b.BuildType(stmt.Type, map[string]typesystem.TParam{})
	if err == nil {
		t, err = ctx.Engine.Instantiate(t, typesystem.Identity())
	}
	if err != nil {
		if d, ok := err.(*diagnostics.Diagnostic); ok {
			d.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, d)
		} else {
			d := diagnostics.NewError(diagnostics.ErrE001, stmt.Token, "%s", err.Error())
			d.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, d)
		}
		return
	}

	outcome := typesystem.OutcomeResolved
	if typesystem.ContainsConditional(t) {
		outcome = typesystem.OutcomeDeferred
	}

	ctx.Results = append(ctx.Results, pipeline.Result{
		Line:    stmt.Token.Line,
		Type:    t,
		Outcome: outcome,
	})
}
