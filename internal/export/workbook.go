// Package export writes the analysis results into a single xlsx workbook.
package export

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/KaramelBytes/timeuse-cli/internal/longform"
	"github.com/KaramelBytes/timeuse-cli/internal/stats"
	"github.com/KaramelBytes/timeuse-cli/internal/trend"
	"github.com/KaramelBytes/timeuse-cli/internal/utils"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SheetStats = "stats"
	SheetLong  = "long"
	SheetTrend = "trend"
)

// Workbook writes the per-activity statistics, the long-form records and, when
// fit is not nil, the trend observations and coefficients.
func Workbook(path string, rows []stats.ActivityStats, records []longform.Record, fit *trend.Fit) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetStats); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(stats.Header))
	for i, h := range stats.Header {
		header[i] = h
	}
	if err := setRow(f, SheetStats, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		vals := []any{r.Activity, r.Count}
		for _, v := range r.Fields() {
			vals = append(vals, cell(v))
		}
		if err := setRow(f, SheetStats, i+2, vals); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetLong); err != nil {
		return fmt.Errorf("add sheet %s: %w", SheetLong, err)
	}
	longHeader := []any{longform.ColActivity, longform.ColName, longform.ColMinutes, longform.ColAge, longform.ColSex, longform.ColY1, longform.ColY2, longform.ColYear}
	if err := setRow(f, SheetLong, 1, longHeader); err != nil {
		return err
	}
	for i, r := range records {
		vals := []any{r.Activity, r.Column, cell(r.Minutes), r.Age, r.Sex, nil, nil, cell(r.Year)}
		if r.Matched {
			vals[5], vals[6] = r.Y1, r.Y2
		}
		if err := setRow(f, SheetLong, i+2, vals); err != nil {
			return err
		}
	}

	if fit != nil {
		if _, err := f.NewSheet(SheetTrend); err != nil {
			return fmt.Errorf("add sheet %s: %w", SheetTrend, err)
		}
		summary := [][]any{
			{"activity", fit.Label},
			{"slope", fit.Slope},
			{"intercept", fit.Intercept},
			{"r_squared", fit.RSquared},
			{"n", fit.N},
			{"total_change", fit.TotalChange},
			{},
			{"year", "minutes", "predicted"},
		}
		for i, vals := range summary {
			if err := setRow(f, SheetTrend, i+1, vals); err != nil {
				return err
			}
		}
		for i := range fit.X {
			if err := setRow(f, SheetTrend, len(summary)+i+1, []any{fit.X[i], fit.Y[i], fit.Predicted[i]}); err != nil {
				return err
			}
		}
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, vals []any) error {
	if len(vals) == 0 {
		return nil
	}
	cellName, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cellName, &vals); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cellName, err)
	}
	return nil
}

// cell leaves missing values blank.
func cell(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
