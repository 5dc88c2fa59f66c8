package longform

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/timeuse-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		name  string
		col   string
		want  Category
		match bool
	}{
		{
			name:  "total",
			col:   "15-19_year-old_total_1986_1987",
			want:  Category{Age: "15-19_year-old", Sex: "total", Y1: 1986, Y2: 1987},
			match: true,
		},
		{
			name:  "embedded in a longer name",
			col:   "Minutes_60-69_year-old_females_2009_2010_(avg)",
			want:  Category{Age: "60-69_year-old", Sex: "females", Y1: 2009, Y2: 2010},
			match: true,
		},
		{name: "unknown sex", col: "15-19_year-old_other_1986_1987"},
		{name: "not a category", col: "Note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColumn(tt.col)
			assert.Equal(t, tt.match, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	c, _ := ParseColumn("20-29_year-old_males_1999_2000")
	assert.Equal(t, 1999.5, c.MidYear())
}

func fixture(t *testing.T) *table.Table {
	t.Helper()
	src := strings.Join([]string{
		"title",
		"Activity;15–19 year-old total 1999/2000;15–19 year-old total 1986/1987;15–19 year-old males 1986/1987;20–29 year-old total 1986/1987;20–29 year-old total 2009/2010;Note",
		"Income producing activity;40;50;70;300;280;",
		"Sleeping;540;550;545;500;490;x",
	}, "\n")
	tbl, err := table.Read(strings.NewReader(src), "t.csv", table.DefaultOptions())
	require.NoError(t, err)
	return tbl
}

func TestMelt(t *testing.T) {
	recs := Melt(fixture(t))
	require.Len(t, recs, 12)

	first := recs[0]
	assert.Equal(t, "Income producing activity", first.Activity)
	assert.Equal(t, "15-19_year-old_total_1999_2000", first.Column)
	assert.Equal(t, 40.0, first.Minutes)
	assert.True(t, first.Matched)
	assert.Equal(t, 1999.5, first.Year)

	note := recs[5]
	assert.Equal(t, "Note", note.Column)
	assert.False(t, note.Matched)
	assert.Empty(t, note.Age)
	assert.True(t, math.IsNaN(note.Year))
	assert.True(t, math.IsNaN(note.Minutes))

	assert.Equal(t, "Sleeping", recs[6].Activity)
}

func TestSelectFiltersAndSorts(t *testing.T) {
	df := Frame(Melt(fixture(t)))
	require.NoError(t, df.Err)
	assert.Equal(t, 12, df.Nrow())

	sub, err := Select(df, "Income producing activity", "total")
	require.NoError(t, err)
	require.Equal(t, 4, sub.Nrow())

	x, y := Points(sub)
	assert.Equal(t, []float64{1986.5, 1986.5, 1999.5, 2009.5}, x)
	// rows of equal year keep table order
	assert.Equal(t, []float64{50, 300, 40, 280}, y)

	all, err := Select(df, "Income producing activity", "")
	require.NoError(t, err)
	assert.Equal(t, 6, all.Nrow())

	none, err := Select(df, "Knitting", "total")
	require.NoError(t, err)
	assert.Equal(t, 0, none.Nrow())
	x, y = Points(none)
	assert.Nil(t, x)
	assert.Nil(t, y)
}

func TestGroups(t *testing.T) {
	df := Frame(Melt(fixture(t)))
	sub, err := Select(df, "Income producing activity", "total")
	require.NoError(t, err)

	groups, err := Groups(sub, ColAge)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "15-19_year-old", groups[0].Label)
	assert.Equal(t, []float64{1986.5, 1999.5}, groups[0].X)
	assert.Equal(t, []float64{50, 40}, groups[0].Y)

	assert.Equal(t, "20-29_year-old", groups[1].Label)
	assert.Equal(t, []float64{1986.5, 2009.5}, groups[1].X)
	assert.Equal(t, []float64{300, 280}, groups[1].Y)

	empty, err := Groups(Frame(nil), ColAge)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
