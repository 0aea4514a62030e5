package render

import (
	"image/color"
	"io"

	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
	"github.com/OFFIS-RIT/flavor/backend/pkg/view"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// incidence adapts a heatmap view to plotter.GridXYZ. The first row is drawn
// at the top.
type incidence struct {
	v view.HeatmapView
}

func (m incidence) Dims() (c, r int) { return len(m.v.Columns), len(m.v.Rows) }

func (m incidence) Z(c, r int) float64 {
	return float64(m.v.Values[len(m.v.Rows)-1-r][c])
}

func (m incidence) X(c int) float64 { return float64(c) }
func (m incidence) Y(r int) float64 { return float64(r) }

type twoTone [2]color.Color

func (p twoTone) Colors() []color.Color { return p[:] }

// Heatmap draws the ingredient by compound matrix.
func Heatmap(w io.Writer, v view.HeatmapView, opts Options) error {
	if len(v.Rows) == 0 || len(v.Columns) == 0 {
		return ErrEmptyChart
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title

	pal := twoTone{
		color.RGBA{R: 0xf1, G: 0xf3, B: 0xf5, A: 0xff},
		hexColor(graph.DefaultPalette.Color(graph.CategoryCompound)),
	}
	h := plotter.NewHeatMap(incidence{v}, pal)
	h.Min, h.Max = 0, 1
	p.Add(h)

	xticks := make([]plot.Tick, len(v.Columns))
	for c, name := range v.Columns {
		xticks[c] = plot.Tick{Value: float64(c), Label: name}
	}
	yticks := make([]plot.Tick, len(v.Rows))
	for r, name := range v.Rows {
		yticks[len(v.Rows)-1-r] = plot.Tick{Value: float64(len(v.Rows) - 1 - r), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -1

	return write(w, p, opts)
}
