package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/qbank-cli/internal/pipeline"
	"github.com/KaramelBytes/qbank-cli/internal/report"
)

var (
	anaFlags      runFlags
	anaOutputPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Deduplicate a question table and print a data-quality report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := anaFlags.source(cmd, args[0])
		if err != nil {
			return err
		}
		format, err := anaFlags.reportFormat(cmd)
		if err != nil {
			return err
		}

		// Decide where to write: --output path, or stdout
		var sink pipeline.Sink = &report.WriterSink{W: cmd.OutOrStdout(), Format: format}
		if anaOutputPath != "" {
			sink = &report.FileSink{Path: anaOutputPath, Format: format}
		}
		if _, err := anaFlags.driver(cmd).Run(cmd.Context(), src, sink); err != nil {
			return err
		}
		if anaOutputPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", anaOutputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaFlags.bind(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
}
