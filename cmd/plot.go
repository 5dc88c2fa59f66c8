package cmd

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/timeuse-cli/internal/pipeline"
	"github.com/KaramelBytes/timeuse-cli/internal/stats"
	"github.com/KaramelBytes/timeuse-cli/internal/trend"
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Render the statistics, group and trend charts",
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
		paths, err := p.DrawStats(stats.ByRow(t))
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
			if !errors.Is(err, trend.ErrTooFewPoints) && !errors.Is(err, trend.ErrDegenerate) {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: skipping trend chart: %v\n", err)
			fit = nil
		}
		more, err := p.DrawSelection(groups, fit)
		if err != nil {
			return err
		}
		for _, path := range append(paths, more...) {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote chart %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	addInputFlags(plotCmd)
	addSelectFlags(plotCmd)
}
