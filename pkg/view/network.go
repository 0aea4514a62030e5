package view

import (
	"strings"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
)

type NetworkOptions struct {
	Seed    uint64
	Updates int
	// Scale is the half width of the initial layout in pixels.
	Scale float64
}

func DefaultNetworkOptions() NetworkOptions {
	return NetworkOptions{Seed: LayoutSeed, Updates: 100, Scale: 400}
}

type NetworkNode struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Group graph.Category `json:"group"`
	Color string         `json:"color"`
	Size  int            `json:"size"`
	Title string         `json:"title"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
}

type NetworkEdge struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Width float64 `json:"width"`
	Title string  `json:"title,omitempty"`
}

// Physics holds the repulsion solver settings of the interactive network.
type Physics struct {
	Solver       string  `json:"solver"`
	NodeDistance float64 `json:"nodeDistance"`
	SpringLength float64 `json:"springLength"`
}

type NetworkView struct {
	Nodes   []NetworkNode `json:"nodes"`
	Edges   []NetworkEdge `json:"edges"`
	Physics Physics       `json:"physics"`
}

// Network returns the interactive network view with precomputed positions.
func Network(g *graph.Graph, opts NetworkOptions) NetworkView {
	def := DefaultNetworkOptions()
	if opts.Updates <= 0 {
		opts.Updates = def.Updates
	}
	if opts.Scale <= 0 {
		opts.Scale = def.Scale
	}

	pos := ForceLayout(g, opts.Seed, opts.Updates, opts.Scale)
	v := NetworkView{
		Nodes:   make([]NetworkNode, 0, len(g.Nodes)),
		Edges:   make([]NetworkEdge, 0, len(g.Edges)),
		Physics: Physics{Solver: "repulsion", NodeDistance: 150, SpringLength: 200},
	}
	for i, n := range g.Nodes {
		v.Nodes = append(v.Nodes, NetworkNode{
			ID:    n.ID,
			Label: n.Label,
			Group: n.Category,
			Color: n.Color,
			Size:  n.Size,
			Title: n.Title,
			X:     pos[i].X,
			Y:     pos[i].Y,
		})
	}
	for _, e := range g.Edges {
		v.Edges = append(v.Edges, NetworkEdge{
			From:  e.Source,
			To:    e.Target,
			Width: e.Weight,
			Title: strings.Join(e.Descriptors, ", "),
		})
	}
	return v
}
