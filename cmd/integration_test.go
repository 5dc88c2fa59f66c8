package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/timeuse-cli/internal/manifest"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var surveyRows = []string{
	"Time use per day by activity, minutes",
	"Activity;15–19 year-old total 1986/1987;15–19 year-old total 1999/2000;15–19 year-old total 2009/2010;" +
		"20–29 year-old total 1986/1987;20–29 year-old total 1999/2000;20–29 year-old total 2009/2010",
	"Income producing activity;100;110;120;200;210;220",
	"Sleeping;500;510;520;480;;500",
}

// resetFlags clears values and Changed state that persist across Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		_ = fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCLI is a helper to execute the root command with args and capture what it prints via cmd.OutOrStdout.
func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// setupHome isolates config under a temp HOME and writes the survey fixture.
func setupHome(t *testing.T) (home, input string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	input = filepath.Join(home, "stadat.csv")
	require.NoError(t, os.WriteFile(input, []byte(strings.Join(surveyRows, "\n")+"\n"), 0o644))
	return home, input
}

func TestCLI_Run(t *testing.T) {
	home, input := setupHome(t)
	outDir := filepath.Join(home, "out")

	out, err := execCLI(t, "run", input, "--output-dir", outDir, "--workbook", "timeuse.xlsx", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote workbook: timeuse.xlsx")
	assert.Contains(t, out, "✓ Run ")

	for _, name := range []string{"cleaned_data.csv", "activity_descriptive_stats.csv", "timeuse.xlsx", manifest.FileName} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	run, err := manifest.Load(outDir)
	require.NoError(t, err)
	assert.Equal(t, input, run.Input)
	assert.Len(t, run.ByKind(manifest.KindChart), 4)

	out, err = execCLI(t, "list", outDir, "--kind", manifest.KindStats)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+run.ID)
	assert.Contains(t, out, "activity_descriptive_stats.csv")
	assert.NotContains(t, out, "cleaned_data.csv")
}

func TestCLI_CleanAndStats(t *testing.T) {
	home, input := setupHome(t)
	cleaned := filepath.Join(home, "clean.csv")

	_, err := execCLI(t, "clean", input, "-o", cleaned)
	require.NoError(t, err)
	b, err := os.ReadFile(cleaned)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Activity;15-19_year-old_total_1986_1987;"), string(b))

	out, err := execCLI(t, "stats", input)
	require.NoError(t, err)
	assert.Contains(t, out, "[DESCRIPTIVE STATISTICS]")
	assert.Contains(t, out, "| Sleeping | 5 |")

	statsPath := filepath.Join(home, "stats.csv")
	out, err = execCLI(t, "stats", input, "-o", statsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote statistics for 2 activities")
	_, err = os.Stat(statsPath)
	assert.NoError(t, err)
}

func TestCLI_Trend(t *testing.T) {
	_, input := setupHome(t)

	out, err := execCLI(t, "trend", input)
	require.NoError(t, err)
	assert.Contains(t, out, "[LINEAR TREND]")
	assert.Contains(t, out, "Activity: Income producing activity")

	out, err = execCLI(t, "trend", input, "--activity", "Sleeping")
	require.NoError(t, err)
	assert.Contains(t, out, "Activity: Sleeping")

	_, err = execCLI(t, "trend", input, "--activity", "Juggling")
	assert.Error(t, err)

	_, err = execCLI(t, "trend", input, "--sex", "other")
	assert.Error(t, err)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home, _ := setupHome(t)

	_, err := execCLI(t, "config", "set", "activity", "Sleeping")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".timeuse", "config.yaml"))
	require.NoError(t, err)

	out, err := execCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "activity: Sleeping")

	_, err = execCLI(t, "config", "set", "skip_rows", "-1")
	assert.Error(t, err)
	_, err = execCLI(t, "config", "set", "nope", "1")
	assert.Error(t, err)
}

func TestCLI_RunPreviewZero(t *testing.T) {
	home, input := setupHome(t)

	out, err := execCLI(t, "run", input, "--output-dir", filepath.Join(home, "out"), "--charts=false", "--preview", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "[TABLE]")
	assert.NotContains(t, out, "[HEAD]")
	assert.NotContains(t, out, "[DESCRIPTIVE STATISTICS]")
	assert.Contains(t, out, "[LINEAR TREND]")

	out, err = execCLI(t, "run", input, "--output-dir", filepath.Join(home, "out"), "--charts=false", "--preview", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[HEAD]")
	assert.Contains(t, out, "[DESCRIPTIVE STATISTICS]")
	assert.Contains(t, out, "(1 more rows)")
}

func TestCLI_PlotSkipsImpossibleTrend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	input := filepath.Join(home, "one_period.csv")
	rows := []string{
		"Time use per day by activity, minutes",
		"Activity;15–19 year-old total 2009/2010;20–29 year-old total 2009/2010",
		"Income producing activity;120;220",
	}
	require.NoError(t, os.WriteFile(input, []byte(strings.Join(rows, "\n")+"\n"), 0o644))
	outDir := filepath.Join(home, "out")

	out, err := execCLI(t, "plot", input, "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "⚠ Warning: skipping trend chart")

	charts := filepath.Join(outDir, "charts")
	_, err = os.Stat(filepath.Join(charts, "income-producing-activity_by_age.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(charts, "income-producing-activity_trend.png"))
	assert.True(t, os.IsNotExist(err), "trend chart should not be written")
	matches, err := filepath.Glob(filepath.Join(charts, "*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}
