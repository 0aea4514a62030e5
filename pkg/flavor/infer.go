package flavor

import (
	"fmt"
)

// Inference describes what smart add derived from the user input.
type Inference struct {
	Records []Record `json:"records"`
	// Inferred is true when the compound was looked up through the descriptor.
	Inferred bool `json:"inferred"`
	// Compounds lists the compounds matched through the seed descriptor.
	Compounds []string `json:"compounds,omitempty"`
}

// Infer turns partial user input into the records to insert.
//
// A full triple is taken literally. With an ingredient and a descriptor but no
// compound, every compound recorded against that exact descriptor is matched
// and the ingredient inherits the full descriptor profile of each match.
// Anything else fails with ErrMissingFields.
func Infer(t *Table, ingredient, compound, descriptor string) (Inference, error) {
	ingredient = NormalizeCell(ingredient)
	compound = NormalizeCell(compound)
	descriptor = NormalizeCell(descriptor)

	switch {
	case ingredient != "" && compound != "" && descriptor != "":
		return Inference{
			Records: []Record{{Ingredient: ingredient, Compound: compound, Descriptor: descriptor}},
		}, nil
	case ingredient != "" && descriptor != "" && compound == "":
		matched := t.CompoundsForDescriptor(descriptor)
		if len(matched) == 0 {
			return Inference{}, fmt.Errorf("%w %q", ErrCannotInfer, descriptor)
		}
		var records []Record
		for _, c := range matched {
			for _, d := range t.DescriptorsForCompound(c) {
				records = append(records, Record{Ingredient: ingredient, Compound: c, Descriptor: d})
			}
		}
		return Inference{Records: records, Inferred: true, Compounds: matched}, nil
	default:
		return Inference{}, ErrMissingFields
	}
}
