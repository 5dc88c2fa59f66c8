package cmd

import (
	"fmt"

	"github.com/KaramelBytes/timeuse-cli/internal/manifest"
	"github.com/KaramelBytes/timeuse-cli/internal/pipeline"
	"github.com/KaramelBytes/timeuse-cli/internal/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runCharts   bool
	runWorkbook string
	runPreview  int
	runQuiet    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run the whole analysis: clean, describe, reshape, chart and fit",
	Long: `Reads the survey table (the configured input when no file is given), writes the
cleaned table and the per-activity statistics, renders the charts, fits the trend for
the selected activity and records every output in manifest.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := resolveOptions(cmd, args)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("charts") {
			opt.Charts = runCharts
		}
		if cmd.Flags().Changed("workbook") {
			opt.WorkbookFile = runWorkbook
		}
		preview := runPreview
		if !cmd.Flags().Changed("preview") && cfg != nil {
			preview = cfg.PreviewRows
		}

		logger.Info("Starting run", zap.String("input", opt.Input), zap.String("activity", opt.Activity))
		res, err := pipeline.New(opt, logger).Run()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !runQuiet {
			fmt.Fprintln(out, res.Table.Preview(preview))
			fmt.Fprintln(out, stats.DescribeMarkdown(res.Columns))
			// preview 0 hides the head rows of both tables
			if preview > 0 {
				fmt.Fprintln(out, stats.Markdown(res.Stats, preview))
			}
			fmt.Fprintln(out, res.Fit.Report())
		}
		for _, a := range res.Manifest.Artifacts {
			fmt.Fprintf(out, "✓ Wrote %s: %s\n", a.Kind, a.Path)
		}
		if len(res.Groups) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: no %s groups found for %q\n", opt.GroupBy, opt.Activity)
		}
		fmt.Fprintf(out, "✓ Run %s recorded in %s\n", res.Manifest.ID, manifest.FileName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addInputFlags(runCmd)
	addSelectFlags(runCmd)
	runCmd.Flags().BoolVar(&runCharts, "charts", true, "render charts (overrides config)")
	runCmd.Flags().StringVar(&runWorkbook, "workbook", "", "also write an .xlsx workbook with this file name")
	runCmd.Flags().IntVar(&runPreview, "preview", 5, "rows to show in the console previews (0 = none)")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "only list written files")
}
