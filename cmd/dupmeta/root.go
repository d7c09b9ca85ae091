package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for dupmeta.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dupmeta",
		Short: "Find pages with duplicate SEO metadata",
		Long: `dupmeta analyzes a crawl export and reports pages whose Title, H1 or
Meta Description duplicate those of other pages.

Reports cascade from the most specific match to the least specific one:
full duplicates, Title + H1, Title + Meta Description, and finally each
field on its own. A page claimed by a combination report does not appear
in later reports.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
