// Package chart renders the exploratory charts as image files with gonum/plot.
// The output format follows the file extension (.png, .svg, .pdf).
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/timeuse-cli/internal/longform"
	"github.com/KaramelBytes/timeuse-cli/internal/stats"
	"github.com/KaramelBytes/timeuse-cli/internal/trend"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when a chart would have nothing to draw.
var ErrNoData = errors.New("no data to plot")

// YLabel is the unit of every value axis.
const YLabel = "minutes / person / day"

// Size is the rendered canvas size.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultSize is used for the statistics and group charts.
func DefaultSize() Size { return Size{Width: 12 * vg.Inch, Height: 6 * vg.Inch} }

// RegressionSize is used for the trend chart.
func RegressionSize() Size { return Size{Width: 10 * vg.Inch, Height: 6 * vg.Inch} }

// Inches builds a Size from inch values, falling back to def for non-positive input.
func Inches(w, h float64, def Size) Size {
	s := def
	if w > 0 {
		s.Width = vg.Length(w) * vg.Inch
	}
	if h > 0 {
		s.Height = vg.Length(h) * vg.Inch
	}
	return s
}

// StatsLines draws mean, median, minimum and maximum per activity.
func StatsLines(rows []stats.ActivityStats, path string, size Size) error {
	if len(rows) == 0 {
		return fmt.Errorf("stats lines: %w", ErrNoData)
	}
	p := plot.New()
	p.Title.Text = "Descriptive statistics by activity"
	p.Y.Label.Text = YLabel

	pick := []struct {
		name string
		get  func(stats.Summary) float64
	}{
		{"Mean", func(s stats.Summary) float64 { return s.Mean }},
		{"Median", func(s stats.Summary) float64 { return s.Median }},
		{"Minimum", func(s stats.Summary) float64 { return s.Min }},
		{"Maximum", func(s stats.Summary) float64 { return s.Max }},
	}
	for i, pk := range pick {
		pts := make(plotter.XYs, 0, len(rows))
		for x, r := range rows {
			v := pk.get(r.Summary)
			if math.IsNaN(v) {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(x), Y: v})
		}
		if len(pts) == 0 {
			continue
		}
		if err := addLinePoints(p, pk.name, pts, i); err != nil {
			return fmt.Errorf("stats lines: %w", err)
		}
	}
	p.NominalX(activityNames(rows)...)
	rotateX(p)
	p.Legend.Top = true
	return save(p, size, path)
}

// MeanBars draws the mean of every activity as a bar. Activities without data get a zero bar.
func MeanBars(rows []stats.ActivityStats, path string, size Size) error {
	if len(rows) == 0 {
		return fmt.Errorf("mean bars: %w", ErrNoData)
	}
	p := plot.New()
	p.Title.Text = "Average time spent by activity (mean)"
	p.Y.Label.Text = YLabel

	values := make(plotter.Values, len(rows))
	for i, r := range rows {
		if !math.IsNaN(r.Mean) {
			values[i] = r.Mean
		}
	}
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("mean bars: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(activityNames(rows)...)
	rotateX(p)
	return save(p, size, path)
}

// GroupLines draws one line per group (typically age groups) across survey periods.
func GroupLines(title string, groups []longform.Series, path string, size Size) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year (middle of survey period)"
	p.Y.Label.Text = YLabel

	drawn := 0
	for i, g := range groups {
		pts := xys(g.X, g.Y)
		if len(pts) == 0 {
			continue
		}
		if err := addLinePoints(p, g.Label, pts, i); err != nil {
			return fmt.Errorf("group lines: %w", err)
		}
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("group lines: %w", ErrNoData)
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return save(p, size, path)
}

// Regression draws the observations as points and the fitted line dashed.
func Regression(fit trend.Fit, path string, size Size) error {
	pts := xys(fit.X, fit.Y)
	if len(pts) == 0 {
		return fmt.Errorf("regression: %w", ErrNoData)
	}
	p := plot.New()
	p.Title.Text = "Linear trend (total)"
	if fit.Label != "" {
		p.Title.Text = fit.Label + ": linear trend (total)"
	}
	p.X.Label.Text = "Year (middle of survey period)"
	p.Y.Label.Text = YLabel

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}
	sc.GlyphStyle.Color = plotutil.Color(0)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(3)

	line := plotter.NewFunction(fit.At)
	line.XMin, line.XMax = floats.Min(fit.X), floats.Max(fit.X)
	line.Samples = 2
	line.Color = plotutil.Color(1)
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	line.Width = vg.Points(1.5)

	p.Add(sc, line, plotter.NewGrid())
	p.Legend.Add("Observed", sc)
	p.Legend.Add("Linear fit", line)
	p.Legend.Top = true
	return save(p, size, path)
}

func addLinePoints(p *plot.Plot, name string, pts plotter.XYs, i int) error {
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	l.Color = plotutil.Color(i)
	s.Color = plotutil.Color(i)
	s.Shape = plotutil.Shape(i)
	p.Add(l, s)
	p.Legend.Add(name, l, s)
	return nil
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

func activityNames(rows []stats.ActivityStats) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Activity
	}
	return names
}

func rotateX(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func save(p *plot.Plot, size Size, path string) error {
	if err := p.Save(size.Width, size.Height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
