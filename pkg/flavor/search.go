package flavor

import "strings"

// IngredientHit is one (ingredient, compound) pair found by an ingredient
// search, with every descriptor recorded for that pair.
type IngredientHit struct {
	Ingredient  string   `json:"ingredient"`
	Compound    string   `json:"compound"`
	Descriptors []string `json:"descriptors"`
}

// CompoundHit is a compound together with every ingredient and descriptor it
// is recorded against.
type CompoundHit struct {
	Compound    string       `json:"compound"`
	Ingredients []string     `json:"ingredients"`
	Descriptors []Descriptor `json:"descriptors"`
}

// Descriptor is a descriptor in a search result. Highlighted marks the ones
// that contain the query of a descriptor search.
type Descriptor struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SearchIngredients matches ingredients by case-insensitive substring and
// groups the hits by ingredient and compound.
func SearchIngredients(t *Table, q string) []IngredientHit {
	type pair struct{ ingredient, compound string }

	var order []pair
	groups := make(map[pair]*IngredientHit)
	for _, r := range t.records {
		if !containsFold(r.Ingredient, q) {
			continue
		}
		key := pair{r.Ingredient, r.Compound}
		hit, ok := groups[key]
		if !ok {
			hit = &IngredientHit{Ingredient: r.Ingredient, Compound: r.Compound}
			groups[key] = hit
			order = append(order, key)
		}
		if !containsString(hit.Descriptors, r.Descriptor) {
			hit.Descriptors = append(hit.Descriptors, r.Descriptor)
		}
	}

	out := make([]IngredientHit, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out
}

// SearchCompounds matches compounds by case-insensitive substring. Each hit
// carries the full profile of the compound, not only the matching rows.
func SearchCompounds(t *Table, q string) []CompoundHit {
	matched := distinct(t.records, func(r Record) (string, bool) {
		return r.Compound, containsFold(r.Compound, q)
	})
	return compoundHits(t, matched, "")
}

// SearchDescriptors finds compounds having a descriptor that matches q
// case-insensitively. Descriptors that contain q verbatim are highlighted.
func SearchDescriptors(t *Table, q string) []CompoundHit {
	matched := distinct(t.records, func(r Record) (string, bool) {
		return r.Compound, containsFold(r.Descriptor, q)
	})
	return compoundHits(t, matched, q)
}

// SearchAny returns the rows where any field matches q case-insensitively.
func SearchAny(t *Table, q string) []Record {
	return t.Filter(func(r Record) bool {
		return containsFold(r.Ingredient, q) || containsFold(r.Compound, q) || containsFold(r.Descriptor, q)
	})
}

func compoundHits(t *Table, compounds []string, highlight string) []CompoundHit {
	out := make([]CompoundHit, 0, len(compounds))
	for _, c := range compounds {
		hit := CompoundHit{
			Compound:    c,
			Ingredients: t.IngredientsForCompound(c),
		}
		for _, d := range t.DescriptorsForCompound(c) {
			hit.Descriptors = append(hit.Descriptors, Descriptor{
				Text:        d,
				Highlighted: highlight != "" && strings.Contains(d, highlight),
			})
		}
		out = append(out, hit)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Options are the distinct values offered by the pickers.
type Options struct {
	Ingredients []string `json:"ingredients"`
	Compounds   []string `json:"compounds"`
	Descriptors []string `json:"descriptors"`
}

// PickerOptions returns the sorted distinct values of every column.
func PickerOptions(t *Table) Options {
	return Options{
		Ingredients: t.Ingredients(),
		Compounds:   t.Compounds(),
		Descriptors: t.Descriptors(),
	}
}
