package pipeline

import (
	"github.com/veltlang/velt/internal/ast"
	"github.com/veltlang/velt/internal/diagnostics"
	"github.com/veltlang/velt/internal/symbols"
	"github.com/veltlang/velt/internal/typesystem"
)

// Result is one evaluated top-level type expression.
type Result struct {
	Line    int
	Type    typesystem.Type
	Outcome typesystem.OutcomeKind
}

// PipelineContext carries the state threaded through the stages.
type PipelineContext struct {
	FilePath string
	Source   string

	AstRoot *ast.Program
	Symbols *symbols.SymbolTable
	Engine  *typesystem.Engine

	Results []Result
	Errors  []*diagnostics.Diagnostic
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages run even after errors so diagnostics
// from every stage accumulate, but evaluation skips statements whose
// declarations already failed.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
