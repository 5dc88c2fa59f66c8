// Package longform reshapes a wide survey table into one record per
// (activity, column) cell and parses the compound column names into
// age group, sex and survey period.
package longform

import (
	"math"
	"regexp"
	"strconv"

	"github.com/KaramelBytes/timeuse-cli/internal/table"
)

// Pattern matches a cleaned column name such as "15-19_year-old_total_1986_1987".
var Pattern = regexp.MustCompile(`(?P<age>\d{2}-\d{2}_year-old)_(?P<sex>males|females|total)_(?P<y1>\d{4})_(?P<y2>\d{4})`)

// Category is the breakdown encoded in a column name.
type Category struct {
	Age string
	Sex string
	// Y1 and Y2 bound the survey period, e.g. 1986 and 1987.
	Y1, Y2 int
}

// MidYear is the middle of the survey period.
func (c Category) MidYear() float64 { return float64(c.Y1+c.Y2) / 2 }

// Record is one cell of the wide table in long form.
type Record struct {
	Activity string
	Column   string
	Minutes  float64
	Category
	// Matched reports whether Column carried a parsable category.
	Matched bool
	// Year is the period midpoint, NaN when the column did not match.
	Year float64
}

// ParseColumn extracts the category from a column name. The pattern may
// appear anywhere in the name.
func ParseColumn(name string) (Category, bool) {
	m := Pattern.FindStringSubmatch(name)
	if m == nil {
		return Category{}, false
	}
	c := Category{
		Age: m[Pattern.SubexpIndex("age")],
		Sex: m[Pattern.SubexpIndex("sex")],
	}
	c.Y1, _ = strconv.Atoi(m[Pattern.SubexpIndex("y1")])
	c.Y2, _ = strconv.Atoi(m[Pattern.SubexpIndex("y2")])
	return c, true
}

// Melt emits one record per row and numeric column, row by row in header order.
func Melt(t *table.Table) []Record {
	cols := t.NumericColumns()
	cats := make([]Category, len(cols))
	matched := make([]bool, len(cols))
	for j, name := range cols {
		cats[j], matched[j] = ParseColumn(name)
	}
	out := make([]Record, 0, t.Rows()*len(cols))
	for i, label := range t.Labels {
		for j, name := range cols {
			r := Record{
				Activity: label,
				Column:   name,
				Minutes:  t.Values[i][j],
				Category: cats[j],
				Matched:  matched[j],
				Year:     math.NaN(),
			}
			if matched[j] {
				r.Year = cats[j].MidYear()
			}
			out = append(out, r)
		}
	}
	return out
}
