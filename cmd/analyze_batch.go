package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/qbank-cli/internal/report"
	"github.com/KaramelBytes/qbank-cli/internal/utils"
)

var (
	abFlags  runFlags
	abOutDir string
	abQuiet  bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze several question tables, one report per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		format, err := abFlags.reportFormat(cmd)
		if err != nil {
			return err
		}
		outDir := abOutDir
		if outDir == "" && cfg != nil {
			outDir = cfg.ReportsDir
		}
		if outDir == "" {
			return fmt.Errorf("--out-dir is required")
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			src, err := abFlags.source(cmd, path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
				continue
			}
			outFile := utils.UniquePath(outDir, summaryBase(path), ".summary"+format.Ext())
			// each file is an independent run
			s, err := abFlags.driver(cmd).Run(cmd.Context(), src, &report.FileSink{Path: outFile, Format: format})
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
				continue
			}
			if !abQuiet {
				fmt.Fprintf(out, "✓ %d rows, %d unique, %d duplicates → %s\n", s.TotalRows, s.UniqueCount, s.DuplicateCount, outFile)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abFlags.bind(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for reports (default: reports_dir from config)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
