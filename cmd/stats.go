package cmd

import (
	"fmt"

	"github.com/KaramelBytes/timeuse-cli/internal/pipeline"
	"github.com/KaramelBytes/timeuse-cli/internal/stats"
	"github.com/spf13/cobra"
)

var (
	statsOutput  string
	statsColumns bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Compute descriptive statistics per activity",
	Long: `Computes count, mean, median, std, min, 25%, 75% and max over the numeric cells of
every activity row. Writes ';'-separated CSV with --output, otherwise prints a table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := resolveOptions(cmd, args)
		if err != nil {
			return err
		}
		if statsOutput != "" {
			opt.StatsFile = statsOutput
		}
		p := pipeline.New(opt, logger)
		t, err := p.Load()
		if err != nil {
			return err
		}
		rows := stats.ByRow(t)
		out := cmd.OutOrStdout()
		if statsColumns {
			fmt.Fprintln(out, stats.DescribeMarkdown(stats.ByColumn(t)))
		}
		if statsOutput == "" {
			fmt.Fprint(out, stats.Markdown(rows, 0))
			return nil
		}
		path, err := p.WriteStats(rows)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote statistics for %d activities to %s\n", len(rows), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addInputFlags(statsCmd)
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "write ';'-separated CSV to this file instead of printing")
	statsCmd.Flags().BoolVar(&statsColumns, "columns", false, "also describe every numeric column")
}
