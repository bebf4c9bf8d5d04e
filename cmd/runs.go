package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/qbank-cli/internal/store"
)

var (
	runsDBPath string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded imports",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := dbPathOrDefault(runsDBPath)
		if err != nil {
			return err
		}
		st, err := store.NewSQLiteStore(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded")
			return nil
		}
		out := cmd.OutOrStdout()
		for _, r := range runs {
			fmt.Fprintf(out, "- %s: %s (%d records, %d new, %d skipped) %s\n",
				r.ID, r.Source, r.Records, r.Inserted, r.Skipped, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVar(&runsDBPath, "db", "", "SQLite datastore path (default: db_path from config)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
}
