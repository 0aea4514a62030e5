// Package view turns an assembled flavor graph into the JSON shapes the
// dashboard charts consume.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
)

var ErrUnknownView = errors.New("unknown view")

// Names of the supported views.
const (
	ViewNetwork = "network"
	ViewSankey  = "sankey"
	ViewHeatmap = "heatmap"
	ViewCircle  = "circle"
)

// Adapter converts a graph into a view payload.
type Adapter func(g *graph.Graph) any

// Names lists the views ByName resolves.
func Names() []string {
	return []string{ViewNetwork, ViewSankey, ViewHeatmap, ViewCircle}
}

// ByName resolves a view adapter. An empty name selects the network view.
func ByName(name string) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ViewNetwork:
		return func(g *graph.Graph) any { return Network(g, DefaultNetworkOptions()) }, nil
	case ViewSankey:
		return func(g *graph.Graph) any { return Sankey(g) }, nil
	case ViewHeatmap:
		return func(g *graph.Graph) any { return Heatmap(g) }, nil
	case ViewCircle:
		return func(g *graph.Graph) any { return Circle(g) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
}
