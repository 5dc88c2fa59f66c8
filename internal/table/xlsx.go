package table

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads a survey table from a workbook sheet.
// If sheetName is empty the first sheet is used. SkipRows applies to sheet rows.
func LoadXLSX(path string, sheetName string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}
	target := sheets[0]
	if sheetName != "" {
		target = ""
		for _, s := range sheets {
			if strings.EqualFold(s, sheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				sheetName, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	if len(rows) <= opt.SkipRows {
		return nil, fmt.Errorf("read header: sheet %s has no header row", target)
	}
	rows = rows[opt.SkipRows:]
	return FromRecords(fmt.Sprintf("%s (sheet: %s)", filepath.Base(path), target), rows[0], rows[1:], opt)
}
