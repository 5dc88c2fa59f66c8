package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/timeuse-cli/internal/utils"
)

// Header is the column layout of the statistics CSV.
var Header = []string{"Activity", "count", "mean", "median", "std", "min", "25%", "75%", "max"}

// Fields returns the summary values in Header order (after the label).
func (s Summary) Fields() []float64 {
	return []float64{s.Mean, s.Median, s.Std, s.Min, s.Q25, s.Q75, s.Max}
}

// WriteCSV writes one line per activity. Missing statistics become empty cells.
func WriteCSV(w io.Writer, rows []ActivityStats, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		rec := make([]string, 0, len(Header))
		rec = append(rec, r.Activity, strconv.Itoa(r.Count))
		for _, v := range r.Fields() {
			rec = append(rec, FormatFloat(v))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the statistics to path atomically.
func SaveCSV(path string, rows []ActivityStats, delim rune) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows, delim); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// FormatFloat renders v in its shortest exact form, or "" for NaN.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Markdown renders the first n activity rows (all when n <= 0) as a pipe table.
func Markdown(rows []ActivityStats, n int) string {
	if n <= 0 || n > len(rows) {
		n = len(rows)
	}
	var b strings.Builder
	b.WriteString("[DESCRIPTIVE STATISTICS]\n")
	b.WriteString("| " + strings.Join(Header, " | ") + " |\n|")
	for range Header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, r := range rows[:n] {
		b.WriteString(fmt.Sprintf("| %s | %d", safeName(r.Activity), r.Count))
		for _, v := range r.Fields() {
			b.WriteString(" | " + short(v))
		}
		b.WriteString(" |\n")
	}
	if n < len(rows) {
		b.WriteString(fmt.Sprintf("(%d more rows)\n", len(rows)-n))
	}
	return b.String()
}

// DescribeMarkdown lists per-column statistics, one line per column.
func DescribeMarkdown(cols []ColumnStats) string {
	var b strings.Builder
	b.WriteString("[COLUMNS]\n")
	for _, c := range cols {
		b.WriteString(fmt.Sprintf("- %s: count %d, mean %s, std %s, min %s, 25%% %s, 50%% %s, 75%% %s, max %s\n",
			c.Column, c.Count, short(c.Mean), short(c.Std), short(c.Min), short(c.Q25), short(c.Median), short(c.Q75), short(c.Max)))
	}
	return b.String()
}

func short(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", v)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return strings.ReplaceAll(s, "|", "/")
}
