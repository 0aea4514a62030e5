package flavor

import "sort"

// Table is an ordered set of records. The first occurrence of a record wins
// and keeps its position.
type Table struct {
	records []Record
	index   map[Record]struct{}
}

// NewTable builds a deduplicated table from the given records.
func NewTable(records ...Record) *Table {
	t := &Table{index: make(map[Record]struct{}, len(records))}
	t.Add(records...)
	return t
}

// Add appends records that are not present yet and returns how many were
// actually added.
func (t *Table) Add(records ...Record) int {
	if t.index == nil {
		t.index = make(map[Record]struct{}, len(records))
	}
	added := 0
	for _, r := range records {
		if _, ok := t.index[r]; ok {
			continue
		}
		t.index[r] = struct{}{}
		t.records = append(t.records, r)
		added++
	}
	return added
}

// Contains reports whether the exact record is present.
func (t *Table) Contains(r Record) bool {
	_, ok := t.index[r]
	return ok
}

// Len returns the number of unique records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records in insertion order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	return NewTable(t.records...)
}

// Filter returns the records matching fn in insertion order.
func (t *Table) Filter(fn func(Record) bool) []Record {
	var out []Record
	for _, r := range t.records {
		if fn(r) {
			out = append(out, r)
		}
	}
	return out
}

// CompoundsForDescriptor returns the distinct compounds recorded against the
// exact descriptor, in first-seen order.
func (t *Table) CompoundsForDescriptor(descriptor string) []string {
	return distinct(t.records, func(r Record) (string, bool) {
		return r.Compound, r.Descriptor == descriptor
	})
}

// DescriptorsForCompound returns the distinct descriptors of the compound, in
// first-seen order.
func (t *Table) DescriptorsForCompound(compound string) []string {
	return distinct(t.records, func(r Record) (string, bool) {
		return r.Descriptor, r.Compound == compound
	})
}

// IngredientsForCompound returns the distinct ingredients of the compound, in
// first-seen order.
func (t *Table) IngredientsForCompound(compound string) []string {
	return distinct(t.records, func(r Record) (string, bool) {
		return r.Ingredient, r.Compound == compound
	})
}

// CompoundsForIngredient returns the distinct compounds of the ingredient, in
// first-seen order.
func (t *Table) CompoundsForIngredient(ingredient string) []string {
	return distinct(t.records, func(r Record) (string, bool) {
		return r.Compound, r.Ingredient == ingredient
	})
}

// Ingredients returns the sorted distinct non-empty ingredients.
func (t *Table) Ingredients() []string {
	return sortedDistinct(t.records, func(r Record) string { return r.Ingredient })
}

// Compounds returns the sorted distinct non-empty compounds.
func (t *Table) Compounds() []string {
	return sortedDistinct(t.records, func(r Record) string { return r.Compound })
}

// Descriptors returns the sorted distinct non-empty descriptors.
func (t *Table) Descriptors() []string {
	return sortedDistinct(t.records, func(r Record) string { return r.Descriptor })
}

func distinct(records []Record, pick func(Record) (string, bool)) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v, ok := pick(r)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sortedDistinct(records []Record, pick func(Record) string) []string {
	out := distinct(records, func(r Record) (string, bool) {
		v := pick(r)
		return v, v != ""
	})
	sort.Strings(out)
	return out
}
