package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/qbank-cli/internal/config"
	"github.com/KaramelBytes/qbank-cli/internal/pipeline"
	"github.com/KaramelBytes/qbank-cli/internal/report"
	"github.com/KaramelBytes/qbank-cli/internal/table"
)

// runFlags are the table and report options shared by analyze, analyze-batch and import.
// Unset flags fall back to the loaded configuration.
type runFlags struct {
	delimiter     string
	sheetName     string
	sheetIndex    int
	format        string
	maxDuplicates int
	maxWarnings   int
}

func (f *runFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	cmd.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	cmd.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "report format: markdown|json|yaml")
	cmd.Flags().IntVar(&f.maxDuplicates, "max-duplicates", 50, "duplicates listed in the report (-1 = all)")
	cmd.Flags().IntVar(&f.maxWarnings, "max-warnings", 20, "unreadable cells listed in the report (-1 = all)")
}

func (f *runFlags) tableOptions(cmd *cobra.Command) (table.Options, error) {
	var opt table.Options
	delim := f.delimiter
	opt.SheetName = f.sheetName
	opt.SheetIndex = f.sheetIndex
	if cfg != nil {
		if !cmd.Flags().Changed("delimiter") {
			delim = cfg.Delimiter
		}
		if !cmd.Flags().Changed("sheet-name") {
			opt.SheetName = cfg.SheetName
		}
		if !cmd.Flags().Changed("sheet-index") && cfg.SheetIndex > 0 {
			opt.SheetIndex = cfg.SheetIndex
		}
	}
	switch delim {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	return opt, nil
}

func (f *runFlags) reportFormat(cmd *cobra.Command) (report.Format, error) {
	name := f.format
	if !cmd.Flags().Changed("format") && cfg != nil {
		name = cfg.ReportFormat
	}
	return report.ParseFormat(name)
}

func (f *runFlags) driver(cmd *cobra.Command) *pipeline.Driver {
	d := pipeline.New(logger)
	d.Options.MaxDuplicateSamples = f.maxDuplicates
	d.Options.MaxWarningSamples = f.maxWarnings
	if cfg != nil {
		if !cmd.Flags().Changed("max-duplicates") {
			d.Options.MaxDuplicateSamples = cfg.MaxDuplicateSamples
		}
		if !cmd.Flags().Changed("max-warnings") {
			d.Options.MaxWarningSamples = cfg.MaxWarningSamples
		}
	}
	return d
}

func (f *runFlags) source(cmd *cobra.Command, path string) (table.Source, error) {
	opt, err := f.tableOptions(cmd)
	if err != nil {
		return nil, err
	}
	return table.Open(path, opt)
}

func dbPathOrDefault(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	dir, err := cfgpkg.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "questions.db"), nil
}

func summaryBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
