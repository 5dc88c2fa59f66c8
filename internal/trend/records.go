package trend

import (
	"sort"

	"github.com/KaramelBytes/timeuse-cli/internal/longform"
)

// ForActivity fits the categorized records of one activity, and one sex when sex
// is not empty, ordered by mid-year. Records sharing a year keep their input order.
func ForActivity(records []longform.Record, activity, sex string) (Fit, error) {
	var sel []longform.Record
	for _, r := range records {
		if !r.Matched || r.Activity != activity {
			continue
		}
		if sex != "" && r.Sex != sex {
			continue
		}
		sel = append(sel, r)
	}
	sort.SliceStable(sel, func(i, j int) bool { return sel[i].Year < sel[j].Year })
	x := make([]float64, len(sel))
	y := make([]float64, len(sel))
	for i, r := range sel {
		x[i], y[i] = r.Year, r.Minutes
	}
	f, err := FitLinear(x, y)
	if err != nil {
		return f, err
	}
	f.Label = activity
	return f, nil
}
