// Package trend fits a straight line through (year, minutes) observations.
package trend

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewPoints is returned when fewer than two complete observations remain.
	ErrTooFewPoints = errors.New("at least two observations are required")
	// ErrDegenerate is returned when every observation shares the same x.
	ErrDegenerate = errors.New("all observations share the same year")
)

// Fit is a least-squares line y = Slope*x + Intercept.
type Fit struct {
	Label     string
	Slope     float64
	Intercept float64
	RSquared  float64
	N         int
	// X and Y are the observations used, in input order.
	X, Y      []float64
	Predicted []float64
	// FirstYear and LastYear are the x of the first and last observation;
	// TotalChange is the difference between their y values.
	FirstYear   float64
	LastYear    float64
	TotalChange float64
}

// FitLinear fits a line through the pairs of x and y, skipping pairs with a NaN.
// Callers pass observations sorted by x so TotalChange spans the whole period.
func FitLinear(x, y []float64) (Fit, error) {
	if len(x) != len(y) {
		return Fit{}, fmt.Errorf("fit: x has %d values, y has %d", len(x), len(y))
	}
	var xs, ys []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return Fit{}, fmt.Errorf("fit: %w (have %d)", ErrTooFewPoints, len(xs))
	}
	if stat.Variance(xs, nil) == 0 {
		return Fit{}, fmt.Errorf("fit: %w", ErrDegenerate)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	f := Fit{
		Slope:       beta,
		Intercept:   alpha,
		RSquared:    stat.RSquared(xs, ys, nil, alpha, beta),
		N:           len(xs),
		X:           xs,
		Y:           ys,
		Predicted:   make([]float64, len(xs)),
		FirstYear:   xs[0],
		LastYear:    xs[len(xs)-1],
		TotalChange: ys[len(ys)-1] - ys[0],
	}
	for i, v := range xs {
		f.Predicted[i] = beta*v + alpha
	}
	return f, nil
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 { return f.Slope*x + f.Intercept }

// Report renders the fit for the console.
func (f Fit) Report() string {
	var b strings.Builder
	b.WriteString("[LINEAR TREND]\n")
	if f.Label != "" {
		b.WriteString(fmt.Sprintf("Activity: %s\n", f.Label))
	}
	b.WriteString(fmt.Sprintf("  Slope: %.3f minutes/year\n", f.Slope))
	b.WriteString(fmt.Sprintf("  Intercept: %.3f\n", f.Intercept))
	b.WriteString(fmt.Sprintf("  R²: %.3f (n=%d)\n", f.RSquared, f.N))
	b.WriteString(fmt.Sprintf("  Total change (%s→%s): %.1f minutes\n", yearLabel(f.FirstYear), yearLabel(f.LastYear), f.TotalChange))
	return b.String()
}

func yearLabel(y float64) string {
	if y == math.Trunc(y) {
		return fmt.Sprintf("%.0f", y)
	}
	return fmt.Sprintf("%.1f", y)
}
