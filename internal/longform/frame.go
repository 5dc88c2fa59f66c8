package longform

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the long-form frame.
const (
	ColActivity = "Activity"
	ColName     = "col"
	ColMinutes  = "minutes"
	ColAge      = "age"
	ColSex      = "sex"
	ColY1       = "y1"
	ColY2       = "y2"
	ColYear     = "year"
)

// Series is one named line of (year, minutes) points sorted by year.
type Series struct {
	Label string
	X, Y  []float64
}

// Frame loads records into a dataframe for filtering and grouping.
func Frame(records []Record) dataframe.DataFrame {
	n := len(records)
	activity := make([]string, n)
	col := make([]string, n)
	minutes := make([]float64, n)
	age := make([]string, n)
	sex := make([]string, n)
	y1 := make([]float64, n)
	y2 := make([]float64, n)
	year := make([]float64, n)
	for i, r := range records {
		activity[i] = r.Activity
		col[i] = r.Column
		minutes[i] = r.Minutes
		age[i] = r.Age
		sex[i] = r.Sex
		year[i] = r.Year
		y1[i], y2[i] = math.NaN(), math.NaN()
		if r.Matched {
			y1[i], y2[i] = float64(r.Y1), float64(r.Y2)
		}
	}
	return dataframe.New(
		series.New(activity, series.String, ColActivity),
		series.New(col, series.String, ColName),
		series.New(minutes, series.Float, ColMinutes),
		series.New(age, series.String, ColAge),
		series.New(sex, series.String, ColSex),
		series.New(y1, series.Float, ColY1),
		series.New(y2, series.Float, ColY2),
		series.New(year, series.Float, ColYear),
	)
}

// Select keeps the rows of one activity and, when sex is not empty, one sex,
// sorted by year.
func Select(df dataframe.DataFrame, activity, sex string) (dataframe.DataFrame, error) {
	sub := df.Filter(dataframe.F{Colname: ColActivity, Comparator: series.Eq, Comparando: activity})
	if sex != "" {
		sub = sub.Filter(dataframe.F{Colname: ColSex, Comparator: series.Eq, Comparando: sex})
	}
	if sub.Err != nil {
		return sub, fmt.Errorf("filter long form: %w", sub.Err)
	}
	if sub.Nrow() == 0 {
		return sub, nil
	}
	sub = sub.Arrange(dataframe.Sort(ColYear))
	if sub.Err != nil {
		return sub, fmt.Errorf("sort long form: %w", sub.Err)
	}
	return sub, nil
}

// Points returns the year and minutes columns of a frame.
func Points(df dataframe.DataFrame) (x, y []float64) {
	if df.Nrow() == 0 {
		return nil, nil
	}
	return df.Col(ColYear).Float(), df.Col(ColMinutes).Float()
}

// Groups splits df by the values of column by and returns one series per group,
// ordered by group label. Rows with an empty group value are dropped.
func Groups(df dataframe.DataFrame, by string) ([]Series, error) {
	if df.Nrow() == 0 {
		return nil, nil
	}
	g := df.GroupBy(by)
	if g.Err != nil {
		return nil, fmt.Errorf("group by %s: %w", by, g.Err)
	}
	var out []Series
	for _, part := range g.GetGroups() {
		if part.Nrow() == 0 {
			continue
		}
		label := part.Col(by).Records()[0]
		if label == "" {
			continue
		}
		part = part.Arrange(dataframe.Sort(ColYear))
		if part.Err != nil {
			return nil, fmt.Errorf("sort group %s: %w", label, part.Err)
		}
		x, y := Points(part)
		out = append(out, Series{Label: label, X: x, Y: y})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}
