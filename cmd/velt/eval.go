package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veltlang/velt/internal/analyzer"
	"github.com/veltlang/velt/internal/config"
	"github.com/veltlang/velt/internal/diagnostics"
	"github.com/veltlang/velt/internal/parser"
	"github.com/veltlang/velt/internal/pipeline"
	"github.com/veltlang/velt/internal/relate"
	"github.com/veltlang/velt/internal/symbols"
	"github.com/veltlang/velt/internal/typesystem"
)

var flagExpr string

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate type expressions against alias declarations",
	Long: `Evaluate a declaration file. Every bare type expression in the file is
resolved and printed with its outcome. With -e, the given expression is
evaluated after the file's declarations (the file becomes optional).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && flagExpr == "" {
			return fmt.Errorf("nothing to evaluate: pass a file or -e expression")
		}

		v, err := loadConfig()
		if err != nil {
			return err
		}

		source := ""
		filePath := "<expr>"
		if len(args) == 1 {
			if filepath.Ext(args[0]) != config.SourceFileExt {
				return fmt.Errorf("expected a %s file, got %s", config.SourceFileExt, args[0])
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			source = string(data)
			filePath = args[0]
		}
		if flagExpr != "" {
			source = source + "\n" + flagExpr + "\n"
		}

		st := symbols.NewSymbolTable()
		engine := typesystem.NewEngine(relate.New(st), st, resolveMaxDepth(v))

		ctx := pipeline.New(&parser.Processor{}, &analyzer.Processor{}).Run(&pipeline.PipelineContext{
			FilePath: filePath,
			Source:   source,
			Symbols:  st,
			Engine:   engine,
		})

		if len(ctx.Errors) > 0 {
			printer := diagnostics.NewPrinter(os.Stderr)
			if !colorEnabled(v) {
				printer.ForceColor(false)
			}
			printer.Print(ctx.Errors)
			return fmt.Errorf("%d error(s)", len(ctx.Errors))
		}

		for _, r := range ctx.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%s)\n", r.Type, r.Outcome)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVarP(&flagExpr, "expr", "e", "", "type expression to evaluate after the declarations")
}
