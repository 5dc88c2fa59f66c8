// Package stats computes descriptive statistics (count, mean, std, quartiles) over the rows and
// columns of a survey table. Missing values (NaN) are skipped.
package stats

import (
	"math"
	"sort"

	"github.com/KaramelBytes/timeuse-cli/internal/table"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of one set of observations.
// Fields other than Count are NaN when there is nothing to summarize;
// Std additionally needs at least two observations.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Q25    float64
	Q75    float64
	Max    float64
}

// ActivityStats is the Summary of one labeled row.
type ActivityStats struct {
	Activity string
	Summary
}

// ColumnStats is the Summary of one numeric column.
type ColumnStats struct {
	Column string
	Summary
}

// Describe summarizes vals, ignoring NaN entries.
func Describe(vals []float64) Summary {
	xs := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	nan := math.NaN()
	s := Summary{Count: len(xs), Mean: nan, Median: nan, Std: nan, Min: nan, Q25: nan, Q75: nan, Max: nan}
	if len(xs) == 0 {
		return s
	}
	sort.Float64s(xs)
	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
	}
	s.Min = xs[0]
	s.Max = xs[len(xs)-1]
	s.Median = Quantile(xs, 0.5)
	s.Q25 = Quantile(xs, 0.25)
	s.Q75 = Quantile(xs, 0.75)
	return s
}

// ByRow summarizes the numeric cells of every labeled row, in table order.
func ByRow(t *table.Table) []ActivityStats {
	out := make([]ActivityStats, 0, t.Rows())
	for i, label := range t.Labels {
		out = append(out, ActivityStats{Activity: label, Summary: Describe(t.Values[i])})
	}
	return out
}

// ByColumn summarizes every numeric column that holds at least one value.
func ByColumn(t *table.Table) []ColumnStats {
	var out []ColumnStats
	for j, name := range t.NumericColumns() {
		s := Describe(t.Column(j))
		if s.Count == 0 {
			continue
		}
		out = append(out, ColumnStats{Column: name, Summary: s})
	}
	return out
}

// Quantile interpolates linearly between the closest ranks of an ascending slice.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
