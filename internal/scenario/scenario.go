// Package scenario runs YAML-described resolution scenarios: a block of
// alias declarations, one type expression, and the expected result. Used by
// the CLI's run command and by golden tests.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/veltlang/velt/internal/analyzer"
	"github.com/veltlang/velt/internal/parser"
	"github.com/veltlang/velt/internal/pipeline"
	"github.com/veltlang/velt/internal/relate"
	"github.com/veltlang/velt/internal/symbols"
	"github.com/veltlang/velt/internal/typesystem"
)

// Scenario is one evaluation case.
type Scenario struct {
	Name    string `yaml:"name"`
	Decls   string `yaml:"decls"`   // alias declarations, one per line
	Expr    string `yaml:"expr"`    // the expression to evaluate
	Want    string `yaml:"want"`    // expected rendering; empty skips the check
	Outcome string `yaml:"outcome"` // resolved | deferred | error; empty skips the check
}

// Suite is a named list of scenarios sharing an engine configuration.
type Suite struct {
	Name      string     `yaml:"name"`
	MaxDepth  int        `yaml:"max_depth"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Failure describes one scenario that did not meet its expectation.
type Failure struct {
	Scenario string
	Message  string
}

// Report is the result of running a suite. RunID uniquely identifies the
// run in logs and CI output.
type Report struct {
	RunID    string
	Suite    string
	Passed   int
	Failed   int
	Failures []Failure
}

// Load reads a suite from a YAML file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}
	return &suite, nil
}

// Run executes every scenario in the suite, each against a fresh symbol
// table and engine.
func Run(suite *Suite) *Report {
	report := &Report{RunID: uuid.NewString(), Suite: suite.Name}

	for _, sc := range suite.Scenarios {
		if msg := runOne(sc, suite.MaxDepth); msg != "" {
			report.Failed++
			report.Failures = append(report.Failures, Failure{Scenario: sc.Name, Message: msg})
		} else {
			report.Passed++
		}
	}

	return report
}

func runOne(sc Scenario, maxDepth int) string {
	st := symbols.NewSymbolTable()
	engine := typesystem.NewEngine(relate.New(st), st, maxDepth)

	source := sc.Decls
	if sc.Expr != "" {
		source = source + "\n" + sc.Expr + "\n"
	}

	ctx := pipeline.New(&parser.Processor{}, &analyzer.Processor{}).Run(&pipeline.PipelineContext{
		FilePath: sc.Name,
		Source:   source,
		Symbols:  st,
		Engine:   engine,
	})

	if sc.Outcome == "error" {
		if len(ctx.Errors) == 0 {
			return "expected an error, got none"
		}
		return ""
	}

	if len(ctx.Errors) > 0 {
		return fmt.Sprintf("unexpected error: %s", ctx.Errors[0].Error())
	}
	if len(ctx.Results) == 0 {
		return "no expression evaluated"
	}

	result := ctx.Results[len(ctx.Results)-1]

	if sc.Want != "" {
		got := result.Type.String()
		if got != strings.TrimSpace(sc.Want) {
			return fmt.Sprintf("got %s, want %s", got, strings.TrimSpace(sc.Want))
		}
	}
	if sc.Outcome != "" && result.Outcome.String() != sc.Outcome {
		return fmt.Sprintf("outcome is %s, want %s", result.Outcome, sc.Outcome)
	}
	return ""
}
