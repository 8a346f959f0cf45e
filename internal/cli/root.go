// Package cli implements resumectl, which runs the résumé pipeline locally.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumectl",
	Short: "Analyze résumé PDFs from the command line",
	Long: `resumectl runs the résumé pipeline against local files: it renders the
first page preview, stores the PDF and preview, and asks the configured AI
provider for structured feedback.`,
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(renderCmd)
}
