package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/KaramelBytes/timeuse-cli/internal/utils"
)

// WriteCSV writes the cleaned header followed by the trimmed cell text of every row.
func (t *Table) WriteCSV(w io.Writer, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Raw {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the cleaned table to path atomically.
func (t *Table) SaveCSV(path string, delim rune) error {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf, delim); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save cleaned table: %w", err)
	}
	return nil
}
