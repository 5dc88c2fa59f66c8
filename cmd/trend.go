package cmd

import (
	"fmt"

	"github.com/KaramelBytes/timeuse-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var trendChart bool

var trendCmd = &cobra.Command{
	Use:   "trend <file>",
	Short: "Fit a linear trend of minutes over survey years for one activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := resolveOptions(cmd, args)
		if err != nil {
			return err
		}
		p := pipeline.New(opt, logger)
		t, err := p.Load()
		if err != nil {
			return err
		}
		recs, df := p.Reshape(t)
		_, groups, err := p.Select(df)
		if err != nil {
			return err
		}
		fit, err := p.Trend(recs)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), fit.Report())
		if trendChart {
			paths, err := p.DrawSelection(groups, fit)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote chart %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)
	addInputFlags(trendCmd)
	addSelectFlags(trendCmd)
	trendCmd.Flags().BoolVar(&trendChart, "chart", false, "also draw the group and regression charts")
}
