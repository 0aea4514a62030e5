package view

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"

	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

// LayoutSeed keeps layouts stable between requests for the same graph.
const LayoutSeed = 42

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// orderedGraph iterates nodes by id so a seeded layout is reproducible.
type orderedGraph struct {
	*simple.UndirectedGraph
}

func (g orderedGraph) Nodes() gograph.Nodes {
	return byID(g.UndirectedGraph.Nodes())
}

func (g orderedGraph) From(id int64) gograph.Nodes {
	return byID(g.UndirectedGraph.From(id))
}

func byID(it gograph.Nodes) gograph.Nodes {
	nodes := gograph.NodesOf(it)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return iterator.NewOrderedNodes(nodes)
}

// toSimple mirrors g as a gonum graph. Node ids are the indexes in g.Nodes.
func toSimple(g *graph.Graph) orderedGraph {
	sg := simple.NewUndirectedGraph()
	for i := range g.Nodes {
		sg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges {
		from, to := g.Index(e.Source), g.Index(e.Target)
		if from < 0 || to < 0 || from == to {
			continue
		}
		sg.SetEdge(sg.NewEdge(simple.Node(int64(from)), simple.Node(int64(to))))
	}
	return orderedGraph{sg}
}

// ForceLayout places the nodes with the Eades spring embedder and scales the
// result so the widest coordinate equals scale. Positions are indexed like
// g.Nodes.
func ForceLayout(g *graph.Graph, seed uint64, updates int, scale float64) []Position {
	out := make([]Position, len(g.Nodes))
	if len(g.Nodes) < 2 {
		return out
	}

	eades := layout.EadesR2{
		Updates:   updates,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.2,
		Src:       rand.NewPCG(seed, seed),
	}
	o := layout.NewOptimizerR2(toSimple(g), eades.Update)
	for o.Update() {
	}

	var cx, cy float64
	for i := range out {
		v := o.Coord2(int64(i))
		out[i] = Position{X: v.X, Y: v.Y}
		cx += v.X
		cy += v.Y
	}
	cx /= float64(len(out))
	cy /= float64(len(out))

	var extent float64
	for i := range out {
		out[i].X -= cx
		out[i].Y -= cy
		extent = math.Max(extent, math.Max(math.Abs(out[i].X), math.Abs(out[i].Y)))
	}
	if extent == 0 || math.IsNaN(extent) {
		return CircleLayout(len(out), scale)
	}
	for i := range out {
		out[i].X *= scale / extent
		out[i].Y *= scale / extent
	}
	return out
}

// CircleLayout spaces n points evenly on a circle of the given radius,
// starting at the top and going clockwise.
func CircleLayout(n int, radius float64) []Position {
	out := make([]Position, n)
	if n == 1 {
		return out
	}
	for i := range out {
		angle := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
		out[i] = Position{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return out
}
