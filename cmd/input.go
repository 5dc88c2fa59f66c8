package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/timeuse-cli/internal/config"
	"github.com/KaramelBytes/timeuse-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

// Input flags shared by the table commands. Each overrides its config key when set.
var (
	inSheet     string
	inDelimiter string
	inDecimal   string
	inThousands string
	inSkipRows  int
	inLabel     string
	inActivity  string
	inSex       string
)

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&inSheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
	c.Flags().StringVar(&inDelimiter, "delimiter", "", "CSV delimiter: ';' | ',' | 'tab' | '|'")
	c.Flags().StringVar(&inDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	c.Flags().StringVar(&inThousands, "thousands", "", "thousands separator to strip: ','|'.'|'space'")
	c.Flags().IntVar(&inSkipRows, "skip-rows", 0, "title lines to skip before the header")
	c.Flags().StringVar(&inLabel, "label-column", "", "name of the activity column")
}

func addSelectFlags(c *cobra.Command) {
	c.Flags().StringVar(&inActivity, "activity", "", "activity to chart and fit")
	c.Flags().StringVar(&inSex, "sex", "", "sex category: total | males | females")
}

// currentConfig returns the loaded configuration, loading it on first use.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg == nil {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = c
		if flagOutputDir != "" {
			cfg.OutputDir = flagOutputDir
		}
	}
	return cfg, nil
}

// resolveOptions merges config, the optional file argument and the command flags.
func resolveOptions(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	c, err := currentConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	run := *c
	if len(args) > 0 {
		run.Input = args[0]
	}
	f := cmd.Flags()
	if f.Changed("sheet") {
		run.Sheet = inSheet
	}
	if f.Changed("delimiter") {
		run.Delimiter = inDelimiter
	}
	if f.Changed("decimal") {
		run.DecimalSeparator = strings.ToLower(strings.TrimSpace(inDecimal))
	}
	if f.Changed("skip-rows") {
		if inSkipRows < 0 {
			return pipeline.Options{}, fmt.Errorf("invalid --skip-rows: %d", inSkipRows)
		}
		run.SkipRows = inSkipRows
	}
	if f.Changed("label-column") && inLabel != "" {
		run.LabelColumn = inLabel
	}
	if f.Changed("activity") {
		run.Activity = inActivity
	}
	if f.Changed("sex") {
		switch inSex {
		case "total", "males", "females":
			run.Sex = inSex
		default:
			return pipeline.Options{}, fmt.Errorf("invalid --sex: %s (use total, males or females)", inSex)
		}
	}
	opt, err := pipeline.FromConfig(&run)
	if err != nil {
		return opt, err
	}
	if f.Changed("thousands") {
		switch strings.ToLower(strings.TrimSpace(inThousands)) {
		case ",":
			opt.Table.ThousandsSeparator = ','
		case ".":
			opt.Table.ThousandsSeparator = '.'
		case "space", " ":
			opt.Table.ThousandsSeparator = ' '
		case "":
		default:
			return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", inThousands)
		}
	}
	return opt, nil
}
