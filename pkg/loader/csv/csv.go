package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// RowReader reads comma separated files. A leading byte-order mark is
// stripped, quotes are parsed leniently and rows may differ in width.
type RowReader struct {
	Comma rune
}

// NewRowReader creates a RowReader for comma separated content.
func NewRowReader() *RowReader {
	return &RowReader{Comma: ','}
}

// ReadRows returns every non-blank row.
func (l *RowReader) ReadRows(ctx context.Context, content []byte) ([][]string, error) {
	decoded := transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if l.Comma != 0 {
		reader.Comma = l.Comma
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
