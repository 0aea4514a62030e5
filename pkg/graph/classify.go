package graph

import "github.com/OFFIS-RIT/flavor/backend/pkg/flavor"

// StrongThreshold is the number of chosen compounds a secondary ingredient
// must share with the selection to count as strongly associated.
const StrongThreshold = 2

// Association classifies an ingredient relative to a selection.
type Association int

const (
	AssociationNone Association = iota
	AssociationPrimary
	AssociationStrong
	AssociationWeak
)

func (a Association) String() string {
	switch a {
	case AssociationPrimary:
		return "primary"
	case AssociationStrong:
		return "strong"
	case AssociationWeak:
		return "weak"
	default:
		return "none"
	}
}

// Classification is the result of relating a selection to the rest of the
// records. It is derived on every request and never cached.
type Classification struct {
	Primaries []string
	Compounds []string
	// Subset holds every record whose compound was chosen.
	Subset []flavor.Record
	// Secondary lists the non-primary ingredients of Subset in first-seen
	// order. Strong and Weak partition it.
	Secondary []string
	Strong    []string
	Weak      []string

	primary map[string]struct{}
	shared  map[string]int
}

// Classify finds the secondary ingredients of a selection and tags each as
// strong when it shares at least StrongThreshold distinct chosen compounds,
// weak otherwise.
func Classify(records []flavor.Record, primaries, compounds []string) *Classification {
	c := &Classification{
		Primaries: unique(primaries),
		Compounds: unique(compounds),
		Secondary: []string{},
		Strong:    []string{},
		Weak:      []string{},
		primary:   set(primaries),
		shared:    make(map[string]int),
	}
	chosen := set(c.Compounds)

	linked := make(map[string]map[string]struct{})
	for _, r := range records {
		if _, ok := chosen[r.Compound]; !ok {
			continue
		}
		c.Subset = append(c.Subset, r)
		if _, ok := c.primary[r.Ingredient]; ok {
			continue
		}
		l, ok := linked[r.Ingredient]
		if !ok {
			l = make(map[string]struct{})
			linked[r.Ingredient] = l
			c.Secondary = append(c.Secondary, r.Ingredient)
		}
		l[r.Compound] = struct{}{}
	}

	for _, ing := range c.Secondary {
		n := len(linked[ing])
		c.shared[ing] = n
		if n >= StrongThreshold {
			c.Strong = append(c.Strong, ing)
		} else {
			c.Weak = append(c.Weak, ing)
		}
	}
	return c
}

// SharedCount returns how many distinct chosen compounds a secondary
// ingredient is linked to. Primaries and unrelated ingredients report 0.
func (c *Classification) SharedCount(ingredient string) int {
	return c.shared[ingredient]
}

// Association returns how the ingredient relates to the selection. Primary
// classification dominates.
func (c *Classification) Association(ingredient string) Association {
	if _, ok := c.primary[ingredient]; ok {
		return AssociationPrimary
	}
	n, ok := c.shared[ingredient]
	switch {
	case !ok:
		return AssociationNone
	case n >= StrongThreshold:
		return AssociationStrong
	default:
		return AssociationWeak
	}
}
