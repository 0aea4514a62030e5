package view

import (
	"sort"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
)

// HeatmapView is the ingredient by compound incidence matrix. Values[i][j] is
// 1 when Rows[i] is linked to Columns[j].
type HeatmapView struct {
	Rows       []string         `json:"rows"`
	Categories []graph.Category `json:"categories"`
	Columns    []string         `json:"columns"`
	Values     [][]int          `json:"values"`
}

// Heatmap orders rows as inputs, strong and weak ingredients, keeping graph
// order within each group.
func Heatmap(g *graph.Graph) HeatmapView {
	var rows, cols []graph.Node
	for _, n := range g.Nodes {
		if n.Kind == graph.KindCompound {
			cols = append(cols, n)
		} else {
			rows = append(rows, n)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Category.Rank() < rows[j].Category.Rank()
	})

	v := HeatmapView{
		Rows:       make([]string, len(rows)),
		Categories: make([]graph.Category, len(rows)),
		Columns:    make([]string, len(cols)),
		Values:     make([][]int, len(rows)),
	}
	for j, c := range cols {
		v.Columns[j] = c.Label
	}
	for i, r := range rows {
		v.Rows[i] = r.Label
		v.Categories[i] = r.Category
		v.Values[i] = make([]int, len(cols))
		for j, c := range cols {
			if g.HasEdge(r.ID, c.ID) {
				v.Values[i][j] = 1
			}
		}
	}
	return v
}
