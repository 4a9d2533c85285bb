// Package main provides the velt CLI: evaluate conditional type expressions
// against alias declarations, or run YAML scenario suites.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "velt",
	Short: "Velt resolves conditional type expressions",
	Long: `Velt is the conditional-type resolution engine of a structural type
checker, packaged as a CLI. It evaluates expressions of the form
'T extends U ? A : B' against alias declarations, distributing over
unions, short-circuiting on never, and deferring when the outcome
depends on substitutions not yet known.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagMaxDepth, "max-depth", 0, "instantiation depth budget (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored diagnostics")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
