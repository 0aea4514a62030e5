// Package render draws the static dashboard charts as PNG images.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

var ErrEmptyChart = errors.New("nothing to render")

const ContentType = "image/png"

type Options struct {
	Width  vg.Length
	Height vg.Length
	Title  string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 10 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 8 * vg.Inch
	}
	return o
}

func write(w io.Writer, p *plot.Plot, opts Options) error {
	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}

// hexColor parses "#rrggbb". Malformed values yield gray.
func hexColor(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
