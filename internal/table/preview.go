package table

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Preview renders the first n rows as a pipe table, with long cells shortened.
func (t *Table) Preview(n int) string {
	var b strings.Builder
	b.WriteString("[TABLE]\n")
	if t.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", t.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\nColumns: %d\n", t.Rows(), len(t.Header)))
	if n <= 0 || len(t.Raw) == 0 {
		return b.String()
	}
	if n > len(t.Raw) {
		n = len(t.Raw)
	}
	b.WriteString("\n[HEAD]\n| ")
	for i, h := range t.Header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(h))
	}
	b.WriteString(" |\n| ")
	for i := range t.Header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range t.Raw[:n] {
		b.WriteString("| ")
		for i, val := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			val = truncate(val, 40)
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
