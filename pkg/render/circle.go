package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/OFFIS-RIT/flavor/backend/pkg/view"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Circle draws the circular layout: edges as segments, nodes as colored
// markers with their labels.
func Circle(w io.Writer, v view.CircleView, opts Options) error {
	if len(v.Points) == 0 {
		return ErrEmptyChart
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.HideAxes()
	p.X.Min, p.X.Max = -1.3, 1.3
	p.Y.Min, p.Y.Max = -1.3, 1.3

	for _, s := range v.Segments {
		line, err := plotter.NewLine(plotter.XYs{{X: s.X0, Y: s.Y0}, {X: s.X1, Y: s.Y1}})
		if err != nil {
			return fmt.Errorf("failed to create edge: %w", err)
		}
		line.LineStyle.Width = vg.Points(0.5 * s.Weight)
		line.LineStyle.Color = color.Gray{Y: 0x99}
		p.Add(line)
	}

	xys := make(plotter.XYs, len(v.Points))
	labels := make([]string, len(v.Points))
	for i, pt := range v.Points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		labels[i] = pt.Label
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("failed to create markers: %w", err)
	}
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  hexColor(v.Points[i].Color),
			Radius: vg.Points(v.Points[i].Size / 3),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("failed to create labels: %w", err)
	}
	p.Add(names)

	return write(w, p, opts)
}
