package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/timeuse-cli/internal/config"
	"github.com/KaramelBytes/timeuse-cli/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Output flag (overrides config if set)
	flagOutputDir string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process logger, built before every command runs
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "timeuse",
	Short: "timeuse: clean, describe and chart time-use survey tables",
	Long: `timeuse reads a published time-use survey table (minutes per day by activity,
age group, sex and survey period), cleans it, computes descriptive statistics per
activity, reshapes it to long form and fits a linear trend for one activity.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.timeuse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "directory for written files (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(rootCmd.ErrOrStderr(), "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	if f := rootCmd.PersistentFlags(); f.Changed("output-dir") && flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
}
