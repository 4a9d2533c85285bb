package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time using: -ldflags "-X main.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the velt version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "velt %s\n", Version)
	},
}
