package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "stadat-ido0003-10.1.1.3-en.csv", c.Input)
	assert.Equal(t, ";", c.Delimiter)
	assert.Equal(t, 1, c.SkipRows)
	assert.Equal(t, "Activity", c.LabelColumn)
	assert.Equal(t, "Income producing activity", c.Activity)
	assert.Equal(t, "total", c.Sex)
	assert.Equal(t, "cleaned_data.csv", c.CleanedFile)
	assert.Equal(t, "activity_descriptive_stats.csv", c.StatsFile)
	assert.True(t, c.Charts)
	assert.Equal(t, 12.0, c.ChartWidthIn)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("activity: Sleeping\nskip_rows: 0\ncharts: false\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sleeping", c.Activity)
	assert.Equal(t, 0, c.SkipRows)
	assert.False(t, c.Charts)

	t.Setenv("TIMEUSE_ACTIVITY", "Eating")
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Eating", c.Activity)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	require.NoError(t, err)
	c.Sex = "females"
	require.NoError(t, Save(c, ""))
	assert.FileExists(t, filepath.Join(home, ".timeuse", "config.yaml"))

	again, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "females", again.Sex)
}

func TestDelimAndDecimal(t *testing.T) {
	for in, want := range map[string]rune{"": ';', ";": ';', ",": ',', "tab": '\t'} {
		got, err := Delim(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := Delim("#")
	assert.Error(t, err)

	d, err := Decimal("comma")
	require.NoError(t, err)
	assert.Equal(t, ',', d)
	_, err = Decimal("x")
	assert.Error(t, err)
}
