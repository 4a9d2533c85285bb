package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veltlang/velt/internal/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run <suite.yaml>",
	Short: "Run a YAML scenario suite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig()
		if err != nil {
			return err
		}

		suite, err := scenario.Load(args[0])
		if err != nil {
			return err
		}
		if suite.MaxDepth == 0 {
			suite.MaxDepth = resolveMaxDepth(v)
		}

		report := scenario.Run(suite)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "suite %s (run %s): %d passed, %d failed\n",
			report.Suite, report.RunID, report.Passed, report.Failed)
		for _, f := range report.Failures {
			fmt.Fprintf(out, "  FAIL %s: %s\n", f.Scenario, f.Message)
		}

		if report.Failed > 0 {
			return fmt.Errorf("%d scenario(s) failed", report.Failed)
		}
		return nil
	},
}
