package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/timeuse-cli/internal/longform"
	"github.com/KaramelBytes/timeuse-cli/internal/stats"
	"github.com/KaramelBytes/timeuse-cli/internal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func sampleStats() []stats.ActivityStats {
	return []stats.ActivityStats{
		{Activity: "Income producing activity", Summary: stats.Describe([]float64{120, 100, 250})},
		{Activity: "Sleeping", Summary: stats.Describe([]float64{540, 510})},
		{Activity: "Unknown", Summary: stats.Describe([]float64{math.NaN()})},
	}
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStatsLinesAndBars(t *testing.T) {
	dir := t.TempDir()
	lines := filepath.Join(dir, "stats_lines.png")
	bars := filepath.Join(dir, "mean_bars.png")

	require.NoError(t, StatsLines(sampleStats(), lines, DefaultSize()))
	require.NoError(t, MeanBars(sampleStats(), bars, DefaultSize()))
	requireFile(t, lines)
	requireFile(t, bars)

	assert.ErrorIs(t, StatsLines(nil, lines, DefaultSize()), ErrNoData)
	assert.ErrorIs(t, MeanBars(nil, bars, DefaultSize()), ErrNoData)
}

func TestGroupLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.svg")
	groups := []longform.Series{
		{Label: "15-19_year-old", X: []float64{1986.5, 1999.5}, Y: []float64{50, 40}},
		{Label: "20-29_year-old", X: []float64{1986.5, 2009.5}, Y: []float64{300, math.NaN()}},
	}
	require.NoError(t, GroupLines("Income producing activity by age group", groups, path, DefaultSize()))
	requireFile(t, path)

	err := GroupLines("empty", nil, path, DefaultSize())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRegression(t *testing.T) {
	fit, err := trend.FitLinear([]float64{1986.5, 1999.5, 2009.5}, []float64{100, 80, 54})
	require.NoError(t, err)
	fit.Label = "Income producing activity"

	path := filepath.Join(t.TempDir(), "regression.png")
	require.NoError(t, Regression(fit, path, RegressionSize()))
	requireFile(t, path)

	assert.ErrorIs(t, Regression(trend.Fit{}, path, RegressionSize()), ErrNoData)
}

func TestInches(t *testing.T) {
	s := Inches(8, 0, DefaultSize())
	assert.Equal(t, 8*vg.Inch, s.Width)
	assert.Equal(t, 6*vg.Inch, s.Height)
}
