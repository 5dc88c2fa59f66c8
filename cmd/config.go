package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/timeuse-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set timeuse configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := currentConfig(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", cfg.Input)
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		fmt.Fprintf(out, "skip_rows: %d\n", cfg.SkipRows)
		fmt.Fprintf(out, "label_column: %s\n", cfg.LabelColumn)
		fmt.Fprintf(out, "decimal_separator: %s\n", cfg.DecimalSeparator)
		fmt.Fprintf(out, "activity: %s\n", cfg.Activity)
		fmt.Fprintf(out, "sex: %s\n", cfg.Sex)
		fmt.Fprintf(out, "group_by: %s\n", cfg.GroupBy)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "cleaned_file: %s\n", cfg.CleanedFile)
		fmt.Fprintf(out, "stats_file: %s\n", cfg.StatsFile)
		if cfg.WorkbookFile != "" {
			fmt.Fprintf(out, "workbook_file: %s\n", cfg.WorkbookFile)
		}
		fmt.Fprintf(out, "preview_rows: %d\n", cfg.PreviewRows)
		fmt.Fprintf(out, "charts: %t\n", cfg.Charts)
		fmt.Fprintf(out, "charts_dir: %s\n", cfg.ChartsDir)
		fmt.Fprintf(out, "chart_format: %s\n", cfg.ChartFormat)
		fmt.Fprintf(out, "chart_width_in: %.2f\n", cfg.ChartWidthIn)
		fmt.Fprintf(out, "chart_height_in: %.2f\n", cfg.ChartHeightIn)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if _, err := currentConfig(); err != nil {
			return err
		}
		if err := setConfigValue(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", key)
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "input":
		c.Input = val
	case "sheet":
		c.Sheet = val
	case "delimiter":
		if _, err := cfgpkg.Delim(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "skip_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for skip_rows: %v", val)
		}
		c.SkipRows = i
	case "label_column":
		c.LabelColumn = val
	case "decimal_separator":
		if _, err := cfgpkg.Decimal(val); err != nil {
			return err
		}
		c.DecimalSeparator = val
	case "activity":
		c.Activity = val
	case "sex":
		switch val {
		case "total", "males", "females":
			c.Sex = val
		default:
			return fmt.Errorf("invalid sex: %s (use total, males or females)", val)
		}
	case "group_by":
		switch val {
		case "age", "sex":
			c.GroupBy = val
		default:
			return fmt.Errorf("invalid group_by: %s (use age or sex)", val)
		}
	case "output_dir":
		c.OutputDir = val
	case "cleaned_file":
		c.CleanedFile = val
	case "stats_file":
		c.StatsFile = val
	case "workbook_file":
		c.WorkbookFile = val
	case "preview_rows":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for preview_rows: %w", err)
		}
		c.PreviewRows = i
	case "charts":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for charts: %w", err)
		}
		c.Charts = b
	case "charts_dir":
		c.ChartsDir = val
	case "chart_format":
		c.ChartFormat = val
	case "chart_width_in", "chart_height_in":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid float for %s: %v", key, val)
		}
		if key == "chart_width_in" {
			c.ChartWidthIn = f
		} else {
			c.ChartHeightIn = f
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
