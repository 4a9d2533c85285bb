package parser

import (
	"github.com/veltlang/velt/internal/lexer"
	"github.com/veltlang/velt/internal/pipeline"
)

// Processor is the parse stage: source text in, AST and diagnostics out.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(lexer.New(ctx.Source))
	ctx.AstRoot = p.ParseProgram()

	for _, err := range p.Errors() {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, err)
	}

	return ctx
}
