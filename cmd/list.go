package cmd

import (
	"fmt"

	"github.com/KaramelBytes/timeuse-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var listKind string

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the outputs recorded by the last run in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) > 0 {
			dir = args[0]
		} else {
			c, err := currentConfig()
			if err != nil {
				return err
			}
			dir = c.OutputDir
		}
		if dir == "" {
			dir = "."
		}
		run, err := manifest.Load(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.FinishedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Input: %s, %d rows x %d columns\n", run.Input, run.Rows, run.Columns)
		if run.Activity != "" {
			fmt.Fprintf(out, "Selection: %s (sex %s)\n", run.Activity, run.Sex)
		}
		if run.Trend != nil {
			fmt.Fprintf(out, "Trend: %.3f minutes/year over %d points\n", run.Trend.Slope, run.Trend.N)
		}
		kinds := []string{manifest.KindCleaned, manifest.KindStats, manifest.KindChart, manifest.KindWorkbook}
		if listKind != "" {
			kinds = []string{listKind}
		}
		found := false
		for _, k := range kinds {
			for _, a := range run.ByKind(k) {
				fmt.Fprintf(out, "- %s: %s (%s)\n", a.Kind, a.Path, a.Description)
				found = true
			}
		}
		if !found {
			fmt.Fprintln(out, "(no outputs)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listKind, "kind", "", "only list outputs of this kind: cleaned | stats | chart | workbook")
}
