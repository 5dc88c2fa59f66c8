// Package pipeline runs the analysis steps in order: load and clean the table,
// describe every activity, reshape to long form, select one activity, fit its
// trend and render the charts. Each step is also callable on its own.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/timeuse-cli/internal/chart"
	"github.com/KaramelBytes/timeuse-cli/internal/config"
	"github.com/KaramelBytes/timeuse-cli/internal/export"
	"github.com/KaramelBytes/timeuse-cli/internal/longform"
	"github.com/KaramelBytes/timeuse-cli/internal/manifest"
	"github.com/KaramelBytes/timeuse-cli/internal/stats"
	"github.com/KaramelBytes/timeuse-cli/internal/table"
	"github.com/KaramelBytes/timeuse-cli/internal/trend"
	"github.com/KaramelBytes/timeuse-cli/internal/utils"
	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"
)

// ErrActivityNotFound is returned when the selected activity has no rows in the long form.
var ErrActivityNotFound = errors.New("activity not found")

// Options is the resolved configuration of one run.
type Options struct {
	Input string
	Sheet string
	Table table.Options

	Activity string
	Sex      string
	GroupBy  string

	OutputDir    string
	CleanedFile  string
	StatsFile    string
	WorkbookFile string

	Charts      bool
	ChartsDir   string
	ChartFormat string
	ChartSize   chart.Size
}

// FromConfig resolves the user configuration into run options.
func FromConfig(c *config.Global) (Options, error) {
	delim, err := config.Delim(c.Delimiter)
	if err != nil {
		return Options{}, err
	}
	dec, err := config.Decimal(c.DecimalSeparator)
	if err != nil {
		return Options{}, err
	}
	topt := table.DefaultOptions()
	topt.Delimiter = delim
	topt.SkipRows = c.SkipRows
	topt.DecimalSeparator = dec
	if c.LabelColumn != "" {
		topt.LabelColumn = c.LabelColumn
	}
	format := strings.TrimPrefix(strings.ToLower(c.ChartFormat), ".")
	switch format {
	case "":
		format = "png"
	case "png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
	default:
		return Options{}, fmt.Errorf("unsupported chart format: %s", c.ChartFormat)
	}
	groupBy := c.GroupBy
	if groupBy == "" {
		groupBy = longform.ColAge
	}
	return Options{
		Input:        c.Input,
		Sheet:        c.Sheet,
		Table:        topt,
		Activity:     c.Activity,
		Sex:          c.Sex,
		GroupBy:      groupBy,
		OutputDir:    c.OutputDir,
		CleanedFile:  c.CleanedFile,
		StatsFile:    c.StatsFile,
		WorkbookFile: c.WorkbookFile,
		Charts:       c.Charts,
		ChartsDir:    c.ChartsDir,
		ChartFormat:  format,
		ChartSize:    chart.Inches(c.ChartWidthIn, c.ChartHeightIn, chart.DefaultSize()),
	}, nil
}

// Result collects everything a full run produced.
type Result struct {
	Table    *table.Table
	Stats    []stats.ActivityStats
	Columns  []stats.ColumnStats
	Records  []longform.Record
	Groups   []longform.Series
	Fit      *trend.Fit
	Manifest *manifest.Run
}

// Pipeline executes the analysis steps with one set of options.
type Pipeline struct {
	opt Options
	log *zap.Logger
}

// New returns a Pipeline. A nil logger discards log output.
func New(opt Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{opt: opt, log: log}
}

// Load reads and cleans the input table. Workbooks are picked by the .xlsx extension.
func (p *Pipeline) Load() (*table.Table, error) {
	if p.opt.Input == "" {
		return nil, errors.New("no input file")
	}
	var (
		t   *table.Table
		err error
	)
	if strings.EqualFold(filepath.Ext(p.opt.Input), ".xlsx") {
		t, err = table.LoadXLSX(p.opt.Input, p.opt.Sheet, p.opt.Table)
	} else {
		t, err = table.Load(p.opt.Input, p.opt.Table)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", p.opt.Input, err)
	}
	p.log.Info("Loaded table",
		zap.String("path", p.opt.Input),
		zap.Int("rows", t.Rows()),
		zap.Int("columns", len(t.Header)))
	return t, nil
}

// WriteCleaned saves the cleaned table and returns its path.
func (p *Pipeline) WriteCleaned(t *table.Table) (string, error) {
	path := utils.OutputPath(p.opt.OutputDir, p.opt.CleanedFile)
	if err := t.SaveCSV(path, ';'); err != nil {
		return "", err
	}
	p.log.Debug("Wrote cleaned table", zap.String("path", path))
	return path, nil
}

// WriteStats saves the per-activity statistics and returns the path.
func (p *Pipeline) WriteStats(rows []stats.ActivityStats) (string, error) {
	path := utils.OutputPath(p.opt.OutputDir, p.opt.StatsFile)
	if err := stats.SaveCSV(path, rows, ';'); err != nil {
		return "", err
	}
	p.log.Debug("Wrote statistics", zap.String("path", path), zap.Int("activities", len(rows)))
	return path, nil
}

// Reshape melts the table into long form and loads it into a dataframe.
func (p *Pipeline) Reshape(t *table.Table) ([]longform.Record, dataframe.DataFrame) {
	recs := longform.Melt(t)
	matched := 0
	for _, r := range recs {
		if r.Matched {
			matched++
		}
	}
	if unmatched := len(recs) - matched; unmatched > 0 {
		p.log.Debug("Columns without a category", zap.Int("cells", unmatched))
	}
	return recs, longform.Frame(recs)
}

// Select keeps the selected activity and sex, and splits it into groups.
func (p *Pipeline) Select(df dataframe.DataFrame) (dataframe.DataFrame, []longform.Series, error) {
	sub, err := longform.Select(df, p.opt.Activity, p.opt.Sex)
	if err != nil {
		return sub, nil, err
	}
	if sub.Nrow() == 0 {
		return sub, nil, fmt.Errorf("%w: %q (sex %q)", ErrActivityNotFound, p.opt.Activity, p.opt.Sex)
	}
	groups, err := longform.Groups(sub, p.opt.GroupBy)
	if err != nil {
		return sub, nil, err
	}
	p.log.Debug("Selected activity",
		zap.String("activity", p.opt.Activity),
		zap.String("sex", p.opt.Sex),
		zap.Int("rows", sub.Nrow()),
		zap.Int("groups", len(groups)))
	return sub, groups, nil
}

// Trend fits the linear trend through the records of the selected activity and sex.
func (p *Pipeline) Trend(records []longform.Record) (*trend.Fit, error) {
	fit, err := trend.ForActivity(records, p.opt.Activity, p.opt.Sex)
	if err != nil {
		return nil, fmt.Errorf("trend for %q: %w", p.opt.Activity, err)
	}
	p.log.Info("Fitted trend",
		zap.String("activity", p.opt.Activity),
		zap.Float64("slope", fit.Slope),
		zap.Float64("intercept", fit.Intercept),
		zap.Int("n", fit.N))
	return &fit, nil
}

// Chart file names inside the charts directory.
const (
	ChartStatsLines = "descriptive_stats_lines"
	ChartMeanBars   = "mean_by_activity"
)

// ChartPath returns where a chart named base is written.
func (p *Pipeline) ChartPath(base string) string {
	dir := utils.OutputPath(p.opt.OutputDir, p.opt.ChartsDir)
	return filepath.Join(dir, base+"."+p.opt.ChartFormat)
}

// DrawStats renders the statistics line and bar charts.
func (p *Pipeline) DrawStats(rows []stats.ActivityStats) ([]string, error) {
	lines := p.ChartPath(ChartStatsLines)
	if err := utils.EnsureDir(filepath.Dir(lines)); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	if err := chart.StatsLines(rows, lines, p.opt.ChartSize); err != nil {
		return nil, err
	}
	bars := p.ChartPath(ChartMeanBars)
	if err := chart.MeanBars(rows, bars, p.opt.ChartSize); err != nil {
		return nil, err
	}
	return []string{lines, bars}, nil
}

// DrawSelection renders the per-group lines and, when fit is set, the trend chart.
func (p *Pipeline) DrawSelection(groups []longform.Series, fit *trend.Fit) ([]string, error) {
	slug := Slug(p.opt.Activity)
	var out []string
	path := p.ChartPath(slug + "_by_" + Slug(p.opt.GroupBy))
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	title := fmt.Sprintf("%s by %s", p.opt.Activity, p.opt.GroupBy)
	if err := chart.GroupLines(title, groups, path, p.opt.ChartSize); err != nil {
		return nil, err
	}
	out = append(out, path)
	if fit != nil {
		path := p.ChartPath(slug + "_trend")
		size := chart.RegressionSize()
		size.Height = p.opt.ChartSize.Height
		if err := chart.Regression(*fit, path, size); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, nil
}

// Run executes every step, writes all outputs and the run manifest.
func (p *Pipeline) Run() (*Result, error) {
	res := &Result{}
	outDir := p.opt.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := utils.EnsureDir(outDir); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}
	run := manifest.New(p.opt.Input, outDir)
	run.Activity, run.Sex = p.opt.Activity, p.opt.Sex
	res.Manifest = run

	t, err := p.Load()
	if err != nil {
		return nil, err
	}
	res.Table = t
	run.Rows, run.Columns = t.Rows(), len(t.Header)
	cleaned, err := p.WriteCleaned(t)
	if err != nil {
		return nil, err
	}
	run.Add(manifest.KindCleaned, cleaned, "cleaned table")

	res.Stats = stats.ByRow(t)
	res.Columns = stats.ByColumn(t)
	statsPath, err := p.WriteStats(res.Stats)
	if err != nil {
		return nil, err
	}
	run.Add(manifest.KindStats, statsPath, "descriptive statistics per activity")

	var df dataframe.DataFrame
	res.Records, df = p.Reshape(t)
	_, groups, err := p.Select(df)
	if err != nil {
		return nil, err
	}
	res.Groups = groups
	fit, err := p.Trend(res.Records)
	if err != nil {
		return nil, err
	}
	res.Fit = fit
	run.Trend = &manifest.Trend{
		Slope:       fit.Slope,
		Intercept:   fit.Intercept,
		RSquared:    fit.RSquared,
		N:           fit.N,
		TotalChange: fit.TotalChange,
	}

	if p.opt.Charts {
		paths, err := p.DrawStats(res.Stats)
		if err != nil {
			return nil, err
		}
		more, err := p.DrawSelection(groups, fit)
		if err != nil {
			return nil, err
		}
		for _, c := range append(paths, more...) {
			run.Add(manifest.KindChart, c, strings.TrimSuffix(filepath.Base(c), filepath.Ext(c)))
		}
		p.log.Info("Rendered charts", zap.Int("count", len(paths)+len(more)))
	}

	if p.opt.WorkbookFile != "" {
		path := utils.OutputPath(p.opt.OutputDir, p.opt.WorkbookFile)
		if err := export.Workbook(path, res.Stats, res.Records, fit); err != nil {
			return nil, err
		}
		run.Add(manifest.KindWorkbook, path, "statistics, long form and trend")
	}

	if err := run.Save(); err != nil {
		return nil, fmt.Errorf("save manifest: %w", err)
	}
	return res, nil
}

// Slug lowercases s and keeps letters and digits, joining the rest with '-'.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "activity"
	}
	return out
}
