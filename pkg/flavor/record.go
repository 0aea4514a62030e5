package flavor

import "strings"

// Record is a single ingredient, compound and descriptor triple.
//
// Identity is full value equality, so a Record can be used as a map key
// directly. There is no surrogate key.
type Record struct {
	Ingredient string `json:"ingredient"`
	Compound   string `json:"compound"`
	Descriptor string `json:"descriptor"`
}

// Columns is the fixed width of a record row.
const Columns = 3

// HeaderZH is the column header used by the deployment.
var HeaderZH = []string{"食材", "风味物质及英文名", "风味描述"}

// HeaderEN is the english column header.
var HeaderEN = []string{"ingredient", "compound", "descriptor"}

// Header returns the column header for the given language code.
// Anything but "en" falls back to the deployment header.
func Header(lang string) []string {
	if strings.EqualFold(lang, "en") {
		return append([]string(nil), HeaderEN...)
	}
	return append([]string(nil), HeaderZH...)
}

// NormalizeCell converts a raw cell into the stored text form.
// Spreadsheet tools turn missing values into "nan", those become empty.
// Line breaks are stored as "\n" since the CSV reader drops the "\r" of a
// quoted "\r\n".
func NormalizeCell(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "nan" || s == "NaN" {
		return ""
	}
	return s
}

// FromRow builds a record from a positional row. Cells beyond the third are
// ignored and missing cells become empty strings.
func FromRow(row []string) Record {
	var cells [Columns]string
	for i := 0; i < Columns && i < len(row); i++ {
		cells[i] = NormalizeCell(row[i])
	}
	return Record{
		Ingredient: cells[0],
		Compound:   cells[1],
		Descriptor: cells[2],
	}
}

// Row returns the record as a positional row.
func (r Record) Row() []string {
	return []string{r.Ingredient, r.Compound, r.Descriptor}
}

// Valid reports whether the record can be stored. Only the ingredient is
// mandatory.
func (r Record) Valid() bool {
	return r.Ingredient != ""
}

// IsEmpty reports whether every field is empty.
func (r Record) IsEmpty() bool {
	return r.Ingredient == "" && r.Compound == "" && r.Descriptor == ""
}
