package view

import "github.com/OFFIS-RIT/flavor/backend/pkg/graph"

// SankeyLink references nodes by their index in SankeyView.Labels.
type SankeyLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Value  int `json:"value"`
}

type SankeyView struct {
	Labels []string     `json:"labels"`
	Colors []string     `json:"colors"`
	Links  []SankeyLink `json:"links"`
}

// Sankey returns the flow view: inputs flow into compounds, compounds flow
// into secondary ingredients.
func Sankey(g *graph.Graph) SankeyView {
	v := SankeyView{
		Labels: make([]string, 0, len(g.Nodes)),
		Colors: make([]string, 0, len(g.Nodes)),
		Links:  make([]SankeyLink, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		v.Labels = append(v.Labels, n.Label)
		v.Colors = append(v.Colors, n.Color)
	}
	for _, e := range g.Edges {
		ing, comp := g.Index(e.Source), g.Index(e.Target)
		if ing < 0 || comp < 0 {
			continue
		}
		link := SankeyLink{Source: comp, Target: ing, Value: 1}
		if g.Nodes[ing].Category == graph.CategoryInput {
			link = SankeyLink{Source: ing, Target: comp, Value: 1}
		}
		v.Links = append(v.Links, link)
	}
	return v
}
