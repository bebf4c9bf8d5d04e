package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/qbank-cli/internal/report"
	"github.com/KaramelBytes/qbank-cli/internal/store"
)

var (
	impFlags      runFlags
	impDBPath     string
	impReportPath string
	impQuiet      bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Deduplicate a question table and load the unique questions into the datastore",
	Long: `import runs the same cleaning and deduplication as analyze, then stores every
unique question with its normalized text. Questions whose canonical key is already
in the datastore from an earlier import are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := impFlags.source(cmd, args[0])
		if err != nil {
			return err
		}
		format, err := impFlags.reportFormat(cmd)
		if err != nil {
			return err
		}
		dbPath, err := dbPathOrDefault(impDBPath)
		if err != nil {
			return err
		}
		st, err := store.NewSQLiteStore(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		var sinks report.MultiSink
		if !impQuiet {
			sinks = append(sinks, &report.WriterSink{W: cmd.OutOrStdout(), Format: format})
		}
		if impReportPath != "" {
			sinks = append(sinks, &report.FileSink{Path: impReportPath, Format: format})
		}

		d := impFlags.driver(cmd)
		d.Store = st
		s, err := d.Run(cmd.Context(), src, sinks)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Stored %d new questions (%d already present) in %s\n", s.Published.Inserted, s.Published.Skipped, dbPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	impFlags.bind(importCmd)
	importCmd.Flags().StringVar(&impDBPath, "db", "", "SQLite datastore path (default: db_path from config)")
	importCmd.Flags().StringVarP(&impReportPath, "report", "r", "", "optional path to also write the report")
	importCmd.Flags().BoolVarP(&impQuiet, "quiet", "q", false, "do not print the report")
}
