package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Datastore path for `qbank import`.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
	// Report rendering: markdown|json|yaml.
	ReportFormat string `mapstructure:"report_format" yaml:"report_format"`
	ReportsDir   string `mapstructure:"reports_dir" yaml:"reports_dir"`

	// Table reading
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`

	// Review list caps; totals are never capped.
	MaxDuplicateSamples int `mapstructure:"max_duplicate_samples" yaml:"max_duplicate_samples"`
	MaxWarningSamples   int `mapstructure:"max_warning_samples" yaml:"max_warning_samples"`

	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// Dir returns ~/.qbank.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".qbank"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.qbank/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("QBANK")
	v.AutomaticEnv()

	v.SetDefault("db_path", "")
	v.SetDefault("report_format", "markdown")
	v.SetDefault("reports_dir", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("delimiter", "")
	v.SetDefault("max_duplicate_samples", 50)
	v.SetDefault("max_warning_samples", 20)
	v.SetDefault("debug", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "questions.db")
	}
	if c.ReportsDir == "" {
		c.ReportsDir = filepath.Join(dir, "reports")
	}
	return &c, nil
}
