package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
)

var (
	// ErrUnknownPolicy is returned by PolicyByName.
	ErrUnknownPolicy = errors.New("unknown tier policy")
	// ErrNoSelection is returned when no primary ingredient or no compound
	// was chosen.
	ErrNoSelection = errors.New("select at least one ingredient and one compound")
)

// Tiers groups the candidate compounds of a set of primary ingredients.
type Tiers struct {
	// SharedAll holds compounds every primary ingredient has. Only filled
	// when more than one primary is selected.
	SharedAll []string `json:"shared_all"`
	// SharedSome holds compounds at least two, but not all, primaries have.
	SharedSome []string `json:"shared_some"`
	// Unique maps a primary ingredient to the compounds only it has.
	Unique map[string][]string `json:"unique"`
	// Other holds compounds a policy left untiered.
	Other []string `json:"other"`
}

// Defaults returns the compounds that are pre-selected: the shared tiers.
func (t Tiers) Defaults() []string {
	out := make([]string, 0, len(t.SharedAll)+len(t.SharedSome))
	out = append(out, t.SharedAll...)
	return append(out, t.SharedSome...)
}

// Policy decides how the compounds of the primary ingredients are tiered.
type Policy interface {
	Name() string
	Tiers(primaries []string, subset []flavor.Record) Tiers
}

// TieredPolicy splits compounds by how many primaries own them: all of them,
// at least two, or exactly one.
type TieredPolicy struct{}

func (TieredPolicy) Name() string { return "tiered" }

func (TieredPolicy) Tiers(primaries []string, subset []flavor.Record) Tiers {
	primaries = unique(primaries)
	tiers := newTiers(primaries)
	for compound, owners := range owners(subset) {
		switch {
		case len(owners) == len(primaries) && len(primaries) > 1:
			tiers.SharedAll = append(tiers.SharedAll, compound)
		case len(owners) >= 2:
			tiers.SharedSome = append(tiers.SharedSome, compound)
		case len(owners) == 1:
			for owner := range owners {
				tiers.Unique[owner] = append(tiers.Unique[owner], compound)
			}
		}
	}
	return tiers.sorted()
}

// IntersectionPolicy only separates the compounds shared by every primary
// from the rest. With a single primary nothing is shared.
type IntersectionPolicy struct{}

func (IntersectionPolicy) Name() string { return "intersection" }

func (IntersectionPolicy) Tiers(primaries []string, subset []flavor.Record) Tiers {
	primaries = unique(primaries)
	tiers := newTiers(primaries)
	for compound, owners := range owners(subset) {
		switch {
		case len(primaries) > 1 && len(owners) == len(primaries):
			tiers.SharedAll = append(tiers.SharedAll, compound)
		case len(owners) == 1:
			for owner := range owners {
				tiers.Unique[owner] = append(tiers.Unique[owner], compound)
			}
		default:
			tiers.Other = append(tiers.Other, compound)
		}
	}
	return tiers.sorted()
}

// PolicyByName resolves "tiered" or "intersection". An empty name selects
// the tiered policy.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "tiered":
		return TieredPolicy{}, nil
	case "intersection":
		return IntersectionPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Candidates returns the records of the primary ingredients. When features
// are given, only compounds having at least one of those descriptors among
// the primaries' records are kept.
func Candidates(records []flavor.Record, primaries, features []string) []flavor.Record {
	isPrimary := set(primaries)
	var subset []flavor.Record
	for _, r := range records {
		if _, ok := isPrimary[r.Ingredient]; ok {
			subset = append(subset, r)
		}
	}
	if len(features) == 0 {
		return subset
	}

	wanted := set(features)
	keep := make(map[string]struct{})
	for _, r := range subset {
		if _, ok := wanted[r.Descriptor]; ok {
			keep[r.Compound] = struct{}{}
		}
	}
	filtered := subset[:0:0]
	for _, r := range subset {
		if _, ok := keep[r.Compound]; ok {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Select applies the policy to the candidates of the primary ingredients.
func Select(records []flavor.Record, primaries, features []string, policy Policy) Tiers {
	return policy.Tiers(primaries, Candidates(records, primaries, features))
}

// UnionCompounds returns the sorted compounds linked to any primary.
func UnionCompounds(records []flavor.Record, primaries []string) []string {
	out := make([]string, 0)
	for compound := range owners(Candidates(records, primaries, nil)) {
		out = append(out, compound)
	}
	sort.Strings(out)
	return out
}

// IntersectCompounds returns the sorted compounds linked to every primary.
func IntersectCompounds(records []flavor.Record, primaries []string) []string {
	primaries = unique(primaries)
	out := make([]string, 0)
	if len(primaries) == 0 {
		return out
	}
	for compound, o := range owners(Candidates(records, primaries, nil)) {
		if len(o) == len(primaries) {
			out = append(out, compound)
		}
	}
	sort.Strings(out)
	return out
}

func newTiers(primaries []string) Tiers {
	t := Tiers{
		SharedAll:  []string{},
		SharedSome: []string{},
		Unique:     make(map[string][]string, len(primaries)),
		Other:      []string{},
	}
	for _, p := range primaries {
		t.Unique[p] = []string{}
	}
	return t
}

func (t Tiers) sorted() Tiers {
	sort.Strings(t.SharedAll)
	sort.Strings(t.SharedSome)
	sort.Strings(t.Other)
	for _, list := range t.Unique {
		sort.Strings(list)
	}
	return t
}

// owners maps each compound to the set of ingredients recorded against it.
func owners(records []flavor.Record) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	for _, r := range records {
		if r.Compound == "" {
			continue
		}
		o, ok := out[r.Compound]
		if !ok {
			o = make(map[string]struct{})
			out[r.Compound] = o
		}
		o[r.Ingredient] = struct{}{}
	}
	return out
}

func set(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

// unique drops duplicates and keeps the first-seen order.
func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Ways to derive the chosen compounds when none are given explicitly.
const (
	CombineDefault      = "default"
	CombineUnion        = "union"
	CombineIntersection = "intersection"
)

// ChooseCompounds returns the compounds to classify against. Explicit
// compounds win. Otherwise combine picks the policy defaults, the union or
// the intersection of the primaries' compounds. An empty result is
// ErrNoSelection.
func ChooseCompounds(records []flavor.Record, primaries, compounds, features []string, combine string, policy Policy) ([]string, error) {
	primaries = unique(primaries)
	if len(primaries) == 0 {
		return nil, ErrNoSelection
	}
	if policy == nil {
		policy = TieredPolicy{}
	}

	var chosen []string
	switch mode := strings.ToLower(strings.TrimSpace(combine)); {
	case len(compounds) > 0:
		chosen = unique(compounds)
	case mode == "" || mode == CombineDefault:
		chosen = Select(records, primaries, features, policy).Defaults()
	case mode == CombineUnion:
		chosen = compoundsOf(Candidates(records, primaries, features), func(o map[string]struct{}) bool {
			return true
		})
	case mode == CombineIntersection:
		chosen = compoundsOf(Candidates(records, primaries, features), func(o map[string]struct{}) bool {
			return len(o) == len(primaries)
		})
	default:
		return nil, fmt.Errorf("unknown combine mode %q", combine)
	}

	if len(chosen) == 0 {
		return nil, ErrNoSelection
	}
	return chosen, nil
}

func compoundsOf(subset []flavor.Record, keep func(owners map[string]struct{}) bool) []string {
	out := make([]string, 0)
	for compound, o := range owners(subset) {
		if keep(o) {
			out = append(out, compound)
		}
	}
	sort.Strings(out)
	return out
}
