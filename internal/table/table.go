package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoLabelColumn is returned when the configured label column is absent from the header.
var ErrNoLabelColumn = errors.New("label column not found")

// Options controls how a survey table is read and coerced.
type Options struct {
	// Delimiter for CSV. If 0, ';' is used.
	Delimiter rune
	// SkipRows drops this many leading lines (a title line, not a header).
	SkipRows int
	// LabelColumn stays text; every other column is coerced to numbers.
	LabelColumn string
	// DecimalSeparator defaults to '.'.
	DecimalSeparator rune
	// ThousandsSeparator is stripped before parsing when set.
	ThousandsSeparator rune
}

// DefaultOptions matches the layout of the published time-use tables.
func DefaultOptions() Options {
	return Options{
		Delimiter:        ';',
		SkipRows:         1,
		LabelColumn:      "Activity",
		DecimalSeparator: '.',
	}
}

// Table is a cleaned wide table: one labeled row per activity, one numeric column per category.
type Table struct {
	Name   string
	Header []string
	// LabelIndex is the position of the label column in Header.
	LabelIndex int
	Labels     []string
	// Raw keeps the trimmed cell text for every column, in header order.
	Raw [][]string
	// Values holds the coerced numeric columns (header order, label column excluded).
	// Missing or unparsable cells are NaN.
	Values [][]float64
}

// Load opens a CSV file and reads it with Read.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path), opt)
}

// Read parses a delimited survey table, cleans the header and coerces non-label cells.
func Read(r io.Reader, name string, opt Options) (*Table, error) {
	br := bufio.NewReader(r)
	for i := 0; i < opt.SkipRows; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("skip row %d: unexpected end of file", i+1)
			}
			return nil, fmt.Errorf("skip row %d: %w", i+1, err)
		}
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = ';'
	}
	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty table")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return FromRecords(name, header, records, opt)
}

// FromRecords builds a Table from a raw header and body rows.
// It is shared by the CSV and workbook readers.
func FromRecords(name string, header []string, records [][]string, opt Options) (*Table, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t := &Table{Name: name, Header: make([]string, len(header)), LabelIndex: -1}
	for i, h := range header {
		t.Header[i] = CleanHeader(h, i)
	}
	label := opt.LabelColumn
	if label == "" {
		label = "Activity"
	}
	for i, h := range t.Header {
		if h == label {
			t.LabelIndex = i
		}
	}
	if t.LabelIndex < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrNoLabelColumn, label, name)
	}

	ncol := len(t.Header)
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		row := make([]string, ncol)
		for j := 0; j < ncol && j < len(rec); j++ {
			row[j] = strings.TrimSpace(rec[j])
		}
		nums := make([]float64, 0, ncol-1)
		for j, cell := range row {
			if j == t.LabelIndex {
				continue
			}
			x, ok := ParseNumber(cell, opt)
			if !ok {
				x = math.NaN()
			}
			nums = append(nums, x)
		}
		t.Labels = append(t.Labels, row[t.LabelIndex])
		t.Raw = append(t.Raw, row)
		t.Values = append(t.Values, nums)
	}
	return t, nil
}

// CleanHeader trims a header cell and normalizes it to an identifier-like name:
// spaces become underscores, en dashes become hyphens and slashes become underscores.
// Blank headers get a positional name ("Unnamed: 3") before normalizing, so they
// come out as "Unnamed:_3".
func CleanHeader(h string, index int) string {
	s := strings.TrimSpace(h)
	if s == "" {
		s = fmt.Sprintf("Unnamed: %d", index)
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}

// NumericColumns returns the header names of the coerced columns in Values order.
func (t *Table) NumericColumns() []string {
	out := make([]string, 0, len(t.Header))
	for i, h := range t.Header {
		if i != t.LabelIndex {
			out = append(out, h)
		}
	}
	return out
}

// Rows returns the number of labeled rows.
func (t *Table) Rows() int { return len(t.Labels) }

// Column returns the values of one numeric column across all rows.
func (t *Table) Column(j int) []float64 {
	out := make([]float64, len(t.Values))
	for i, row := range t.Values {
		out[i] = row[j]
	}
	return out
}

// ParseNumber coerces a cell to a float. Empty or unparsable cells report false.
func ParseNumber(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	if thou := opt.ThousandsSeparator; thou != 0 && thou != opt.DecimalSeparator {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec := opt.DecimalSeparator; dec != 0 && dec != '.' {
		if strings.Contains(raw, ".") {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// isBlank reports an empty line. A line of bare delimiters (";;") is a row
// with missing cells, not a blank line.
func isBlank(rec []string) bool {
	return len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "")
}
