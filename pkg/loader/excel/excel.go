package excel

import (
	"context"
	"fmt"

	"github.com/tealeg/xlsx"
)

// RowReader reads .xlsx workbooks. Only one sheet is imported, the first one
// unless Sheet names another.
type RowReader struct {
	Sheet string
}

// NewRowReader creates a RowReader for the first sheet.
func NewRowReader() *RowReader {
	return &RowReader{}
}

// ReadRows returns the cell grid of the selected sheet as formatted text.
func (l *RowReader) ReadRows(ctx context.Context, content []byte) ([][]string, error) {
	file, err := xlsx.OpenBinary(content)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheets, err := file.ToSlice()
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}

	idx := 0
	if l.Sheet != "" {
		idx = -1
		for i, sheet := range file.Sheets {
			if sheet.Name == l.Sheet {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("sheet %q not found", l.Sheet)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sheets[idx], nil
}
