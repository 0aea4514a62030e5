package view

import "github.com/OFFIS-RIT/flavor/backend/pkg/graph"

// MarkerScale enlarges node sizes for the static circular chart.
const MarkerScale = 1.5

type CirclePoint struct {
	Label    string         `json:"label"`
	Category graph.Category `json:"category"`
	Color    string         `json:"color"`
	Size     float64        `json:"size"`
	Title    string         `json:"title"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
}

type Segment struct {
	X0     float64 `json:"x0"`
	Y0     float64 `json:"y0"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	Weight float64 `json:"weight"`
}

type CircleView struct {
	Points   []CirclePoint `json:"points"`
	Segments []Segment     `json:"segments"`
}

// Circle places every node on the unit circle in graph order.
func Circle(g *graph.Graph) CircleView {
	pos := CircleLayout(len(g.Nodes), 1)
	v := CircleView{
		Points:   make([]CirclePoint, 0, len(g.Nodes)),
		Segments: make([]Segment, 0, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		v.Points = append(v.Points, CirclePoint{
			Label:    n.Label,
			Category: n.Category,
			Color:    n.Color,
			Size:     float64(n.Size) * MarkerScale,
			Title:    n.Title,
			X:        pos[i].X,
			Y:        pos[i].Y,
		})
	}
	for _, e := range g.Edges {
		a, b := g.Index(e.Source), g.Index(e.Target)
		if a < 0 || b < 0 {
			continue
		}
		v.Segments = append(v.Segments, Segment{
			X0: pos[a].X, Y0: pos[a].Y,
			X1: pos[b].X, Y1: pos[b].Y,
			Weight: e.Weight,
		})
	}
	return v
}
