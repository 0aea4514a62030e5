// Package graph relates a selection of ingredients to the rest of the flavor
// records and assembles the ingredient/compound graph handed to the views.
package graph

import "fmt"

// Kind tells ingredient nodes from compound nodes. An ingredient and a
// compound with the same name are distinct nodes.
type Kind string

const (
	KindIngredient Kind = "ingredient"
	KindCompound   Kind = "compound"
)

// NodeID returns the graph identifier of a named node.
func NodeID(kind Kind, name string) string {
	if kind == KindCompound {
		return "c:" + name
	}
	return "i:" + name
}

type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Category Category `json:"category"`
	Color    string   `json:"color"`
	Size     int      `json:"size"`
	Title    string   `json:"title"`
	// Shared is the number of chosen compounds of a secondary ingredient.
	Shared int `json:"shared,omitempty"`
}

// Edge links an ingredient to a compound it is recorded against.
type Edge struct {
	Source      string   `json:"source"`
	Target      string   `json:"target"`
	Weight      float64  `json:"weight"`
	Descriptors []string `json:"descriptors,omitempty"`
}

// Graph is the undirected ingredient/compound graph of a selection. Edges
// always run from an ingredient node to a compound node.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	nodes map[string]int
	edges map[[2]string]int
}

// Build assembles the graph of a classification: one node per primary,
// chosen compound and secondary ingredient, and one edge per distinct
// ingredient/compound pair of the subset.
func Build(c *Classification, palette Palette) *Graph {
	if palette == nil {
		palette = DefaultPalette
	}
	g := &Graph{
		Nodes: []Node{},
		Edges: []Edge{},
		nodes: make(map[string]int),
		edges: make(map[[2]string]int),
	}

	for _, ing := range c.Primaries {
		g.addNode(KindIngredient, ing, CategoryInput, palette, 0)
	}
	for _, comp := range c.Compounds {
		g.addNode(KindCompound, comp, CategoryCompound, palette, 0)
	}
	for _, ing := range c.Strong {
		g.addNode(KindIngredient, ing, CategoryStrong, palette, c.SharedCount(ing))
	}
	for _, ing := range c.Weak {
		g.addNode(KindIngredient, ing, CategoryWeak, palette, c.SharedCount(ing))
	}

	for _, r := range c.Subset {
		assoc := c.Association(r.Ingredient)
		if assoc == AssociationNone {
			continue
		}
		weight := BaseEdgeWeight
		if assoc == AssociationStrong {
			weight = StrongEdgeWeight
		}
		g.addEdge(NodeID(KindIngredient, r.Ingredient), NodeID(KindCompound, r.Compound), weight, r.Descriptor)
	}
	return g
}

// addNode keeps the first category a node was added with, so primary
// classification dominates.
func (g *Graph) addNode(kind Kind, name string, cat Category, palette Palette, shared int) {
	id := NodeID(kind, name)
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{
		ID:       id,
		Label:    name,
		Kind:     kind,
		Category: cat,
		Color:    palette.Color(cat),
		Size:     categorySizes[cat],
		Title:    fmt.Sprintf("%s: %s", categoryTitles[cat], name),
		Shared:   shared,
	})
}

func (g *Graph) addEdge(source, target string, weight float64, descriptor string) {
	key := [2]string{source, target}
	if idx, ok := g.edges[key]; ok {
		e := &g.Edges[idx]
		if descriptor != "" && !containsString(e.Descriptors, descriptor) {
			e.Descriptors = append(e.Descriptors, descriptor)
		}
		return
	}
	e := Edge{Source: source, Target: target, Weight: weight}
	if descriptor != "" {
		e.Descriptors = []string{descriptor}
	}
	g.edges[key] = len(g.Edges)
	g.Edges = append(g.Edges, e)
}

// Node looks a node up by id.
func (g *Graph) Node(id string) (Node, bool) {
	idx, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[idx], true
}

// Index returns the position of a node in Nodes, or -1.
func (g *Graph) Index(id string) int {
	if idx, ok := g.nodes[id]; ok {
		return idx
	}
	return -1
}

// HasEdge reports whether the two nodes are adjacent, in either direction.
func (g *Graph) HasEdge(a, b string) bool {
	if _, ok := g.edges[[2]string{a, b}]; ok {
		return true
	}
	_, ok := g.edges[[2]string{b, a}]
	return ok
}

// NodesOf returns the nodes of the given categories in graph order.
func (g *Graph) NodesOf(cats ...Category) []Node {
	var out []Node
	for _, n := range g.Nodes {
		for _, c := range cats {
			if n.Category == c {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Count returns the number of nodes per category.
func (g *Graph) Count() map[Category]int {
	out := make(map[Category]int, 4)
	for _, n := range g.Nodes {
		out[n.Category]++
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
