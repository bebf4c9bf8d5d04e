package table

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one worksheet of an Excel workbook.
type XLSXSource struct {
	Path string
	// SheetName selects a sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is 1-based and used when SheetName is empty. <= 0 means the first sheet.
	SheetIndex int
}

func (s *XLSXSource) Read(ctx context.Context) (*Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, &SourceIOError{Path: s.Path, Op: "open xlsx", Err: err}
	}
	defer f.Close()

	sheet, err := s.pickSheet(f.GetSheetList())
	if err != nil {
		return nil, &SourceIOError{Path: s.Path, Op: "select sheet", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SourceIOError{Path: s.Path, Op: "read sheet " + sheet, Err: err}
	}

	t := &Table{Name: fmt.Sprintf("%s (sheet: %s)", filepath.Base(s.Path), sheet)}
	if len(rows) == 0 {
		return t, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	t.Header = header
	t.Rows = buildRows(header, rows[1:])
	return t, nil
}

func (s *XLSXSource) pickSheet(sheets []string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if s.SheetName != "" {
		for _, name := range sheets {
			if strings.EqualFold(name, s.SheetName) {
				return name, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found. Available sheets: %s", s.SheetName, strings.Join(sheets, ", "))
	}
	idx := s.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}
