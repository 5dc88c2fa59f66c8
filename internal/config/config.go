package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input table
	Input            string `mapstructure:"input" yaml:"input"`
	Sheet            string `mapstructure:"sheet" yaml:"sheet"`
	Delimiter        string `mapstructure:"delimiter" yaml:"delimiter"`
	SkipRows         int    `mapstructure:"skip_rows" yaml:"skip_rows"`
	LabelColumn      string `mapstructure:"label_column" yaml:"label_column"`
	DecimalSeparator string `mapstructure:"decimal_separator" yaml:"decimal_separator"`

	// Selection for the group chart and the trend
	Activity string `mapstructure:"activity" yaml:"activity"`
	Sex      string `mapstructure:"sex" yaml:"sex"`
	GroupBy  string `mapstructure:"group_by" yaml:"group_by"`

	// Outputs
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	CleanedFile  string `mapstructure:"cleaned_file" yaml:"cleaned_file"`
	StatsFile    string `mapstructure:"stats_file" yaml:"stats_file"`
	WorkbookFile string `mapstructure:"workbook_file" yaml:"workbook_file"`
	PreviewRows  int    `mapstructure:"preview_rows" yaml:"preview_rows"`

	// Charts
	Charts        bool    `mapstructure:"charts" yaml:"charts"`
	ChartsDir     string  `mapstructure:"charts_dir" yaml:"charts_dir"`
	ChartFormat   string  `mapstructure:"chart_format" yaml:"chart_format"`
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
}

// Dir returns the default configuration directory, ~/.timeuse.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".timeuse"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.timeuse/config.yaml, creating the directory if necessary.
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
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TIMEUSE")
	v.AutomaticEnv()

	v.SetDefault("input", "stadat-ido0003-10.1.1.3-en.csv")
	v.SetDefault("sheet", "")
	v.SetDefault("delimiter", ";")
	v.SetDefault("skip_rows", 1)
	v.SetDefault("label_column", "Activity")
	v.SetDefault("decimal_separator", ".")
	v.SetDefault("activity", "Income producing activity")
	v.SetDefault("sex", "total")
	v.SetDefault("group_by", "age")
	v.SetDefault("output_dir", ".")
	v.SetDefault("cleaned_file", "cleaned_data.csv")
	v.SetDefault("stats_file", "activity_descriptive_stats.csv")
	v.SetDefault("workbook_file", "")
	v.SetDefault("preview_rows", 5)
	v.SetDefault("charts", true)
	v.SetDefault("charts_dir", "charts")
	v.SetDefault("chart_format", "png")
	v.SetDefault("chart_width_in", 12.0)
	v.SetDefault("chart_height_in", 6.0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Delim converts a delimiter setting (",", ";", "tab") to a rune.
func Delim(s string) (rune, error) {
	switch s {
	case "", ";":
		return ';', nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ';' | ',' | 'tab' | '|')", s)
	}
}

// Decimal converts a decimal separator setting ("." or "comma") to a rune.
func Decimal(s string) (rune, error) {
	switch s {
	case "", ".", "dot":
		return '.', nil
	case ",", "comma":
		return ',', nil
	default:
		return 0, fmt.Errorf("unsupported decimal separator: %q (use '.' | 'comma')", s)
	}
}
