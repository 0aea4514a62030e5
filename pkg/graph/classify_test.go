package graph

import (
	"testing"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(i, c, d string) flavor.Record {
	return flavor.Record{Ingredient: i, Compound: c, Descriptor: d}
}

func TestClassifyThreshold(t *testing.T) {
	records := []flavor.Record{
		r("a", "C1", ""),
		r("a", "C2", ""),
		r("b", "C1", ""),
		r("c", "C1", "x"),
		r("c", "C2", "y"),
		r("c", "C2", "z"),
		r("d", "C3", ""),
	}
	c := Classify(records, []string{"a"}, []string{"C1", "C2"})

	assert.Equal(t, []string{"b", "c"}, c.Secondary)
	assert.Equal(t, []string{"c"}, c.Strong)
	assert.Equal(t, []string{"b"}, c.Weak)
	assert.Equal(t, 1, c.SharedCount("b"))
	assert.Equal(t, 2, c.SharedCount("c"))
	assert.Equal(t, AssociationWeak, c.Association("b"))
	assert.Equal(t, AssociationStrong, c.Association("c"))
	assert.Equal(t, AssociationPrimary, c.Association("a"))
	assert.Equal(t, AssociationNone, c.Association("d"))
	assert.Len(t, c.Subset, 6)
}

func TestClassifyPrimaryNeverSecondary(t *testing.T) {
	records := []flavor.Record{
		r("a", "C1", ""),
		r("b", "C1", ""),
		r("b", "C2", ""),
	}
	c := Classify(records, []string{"a", "b"}, []string{"C1", "C2"})
	assert.Empty(t, c.Secondary)
	assert.Equal(t, AssociationPrimary, c.Association("b"))
}

func TestClassifyIsDeterministic(t *testing.T) {
	records := []flavor.Record{
		r("a", "C1", ""), r("x", "C1", ""), r("y", "C1", ""), r("y", "C2", ""), r("z", "C2", ""),
	}
	first := Classify(records, []string{"a"}, []string{"C1", "C2"})
	for i := 0; i < 10; i++ {
		again := Classify(records, []string{"a"}, []string{"C1", "C2"})
		require.Equal(t, first.Strong, again.Strong)
		require.Equal(t, first.Weak, again.Weak)
	}
}

func TestAssociationString(t *testing.T) {
	tests := map[Association]string{
		AssociationNone:    "none",
		AssociationPrimary: "primary",
		AssociationStrong:  "strong",
		AssociationWeak:    "weak",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Fatalf("Association(%d).String() = %q, want %q", a, got, want)
		}
	}
}
