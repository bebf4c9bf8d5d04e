package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/qbank-cli/internal/config"
	"github.com/KaramelBytes/qbank-cli/internal/report"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set qbank configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "db_path: %s\n", cfg.DBPath)
		fmt.Fprintf(out, "report_format: %s\n", cfg.ReportFormat)
		fmt.Fprintf(out, "reports_dir: %s\n", cfg.ReportsDir)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", cfg.SheetIndex)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		fmt.Fprintf(out, "max_duplicate_samples: %d\n", cfg.MaxDuplicateSamples)
		fmt.Fprintf(out, "max_warning_samples: %d\n", cfg.MaxWarningSamples)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "db_path":
			cfg.DBPath = val
		case "report_format":
			f, err := report.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.ReportFormat = string(f)
		case "reports_dir":
			cfg.ReportsDir = val
		case "sheet_name":
			cfg.SheetName = val
		case "sheet_index":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid sheet_index: %v (1-based)", val)
			}
			cfg.SheetIndex = i
		case "delimiter":
			switch val {
			case ",", ";", "tab", "\t", "":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %q (use ',' ';' or tab)", val)
			}
		case "max_duplicate_samples", "max_warning_samples":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			if key == "max_duplicate_samples" {
				cfg.MaxDuplicateSamples = i
			} else {
				cfg.MaxWarningSamples = i
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
