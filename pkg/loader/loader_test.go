package loader

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestToRecords(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		want    []flavor.Record
		wantErr error
	}{
		{
			name: "positional with extra columns",
			rows: [][]string{
				{"Food", "Molecule", "Note", "Source"},
				{"pea", "hexanal", "green", "paper 1"},
			},
			want: []flavor.Record{{Ingredient: "pea", Compound: "hexanal", Descriptor: "green"}},
		},
		{
			name: "empty ingredient dropped",
			rows: [][]string{
				{"a", "b", "c"},
				{"", "hexanal", "green"},
				{" nan ", "hexanal", "green"},
				{"pea", "", ""},
			},
			want: []flavor.Record{{Ingredient: "pea"}},
		},
		{
			name:    "too narrow",
			rows:    [][]string{{"a", "b"}, {"1", "2"}},
			wantErr: ErrInvalidShape,
		},
		{
			name:    "narrow header wide rows",
			rows:    [][]string{{"a", "b"}, {"x", "y", "z"}},
			wantErr: ErrInvalidShape,
		},
		{
			name:    "empty",
			rows:    nil,
			wantErr: ErrEmptyFile,
		},
		{
			name: "header only",
			rows: [][]string{{"a", "b", "c"}},
			want: []flavor.Record{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToRecords(tc.rows)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ToRecords() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReaderFor(t *testing.T) {
	for _, name := range []string{"data.xlsx", "DATA.XLSX", "a.csv", "notes.txt"} {
		_, err := ReaderFor(name)
		assert.NoError(t, err, name)
	}
	_, err := ReaderFor("legacy.xls")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = ReaderFor("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadCSV(t *testing.T) {
	content := "\xEF\xBB\xBFingredient,compound,descriptor,extra\n豌豆,Comp1,杏仁味,x\n\n,Comp2,果香,y\n"
	got, err := Load(context.Background(), ImportFile{Name: "upload.csv", Content: []byte(content)})
	require.NoError(t, err)
	assert.Equal(t, []flavor.Record{{Ingredient: "豌豆", Compound: "Comp1", Descriptor: "杏仁味"}}, got)
}

func TestLoadXLSX(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, cells := range [][]string{
		{"食材", "风味物质及英文名", "风味描述"},
		{"辣椒", "Comp4", "辛辣"},
		{"", "Comp5", "特殊味"},
	} {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	got, err := Load(context.Background(), ImportFile{Name: "book.xlsx", Content: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, []flavor.Record{{Ingredient: "辣椒", Compound: "Comp4", Descriptor: "辛辣"}}, got)
}

func TestLoadRejectsBrokenWorkbook(t *testing.T) {
	_, err := Load(context.Background(), ImportFile{Name: "book.xlsx", Content: []byte("not a zip")})
	require.Error(t, err)
}
