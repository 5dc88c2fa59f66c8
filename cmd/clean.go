package cmd

import (
	"fmt"

	"github.com/KaramelBytes/timeuse-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var cleanOutput string

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Clean the header and numeric cells and write the table as ';'-separated CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := resolveOptions(cmd, args)
		if err != nil {
			return err
		}
		if cleanOutput != "" {
			opt.CleanedFile = cleanOutput
		}
		p := pipeline.New(opt, logger)
		t, err := p.Load()
		if err != nil {
			return err
		}
		path, err := p.WriteCleaned(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleaned %d rows x %d columns to %s\n", t.Rows(), len(t.Header), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	addInputFlags(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output file (default from config: cleaned_data.csv)")
}
