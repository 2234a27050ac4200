package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/chart"
)

// pxToPt converts CSS pixels (96 per inch) to points.
const pxToPt = vg.Inch / 96

// RasterOption configures [RenderPNG] and [RenderPDF].
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	scale float64
	style Style
}

// WithScale multiplies the canvas size (default 1). PNG output at scale 2
// suits high density displays.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithRasterStyle sets the colors (default [DefaultStyle]). Colors must be
// CSS color names or #rgb/#rrggbb hex values.
func WithRasterStyle(s Style) RasterOption {
	return func(r *rasterRenderer) { r.style = s.Merge() }
}

// RenderPNG draws sc as a PNG image.
func RenderPNG(sc chart.Scene, opts ...RasterOption) ([]byte, error) {
	return renderRaster(sc, "png", opts)
}

// RenderPDF draws sc as a single page PDF.
func RenderPDF(sc chart.Scene, opts ...RasterOption) ([]byte, error) {
	return renderRaster(sc, "pdf", opts)
}

func renderRaster(sc chart.Scene, format string, opts []RasterOption) ([]byte, error) {
	r := rasterRenderer{scale: 1, style: DefaultStyle}
	for _, opt := range opts {
		opt(&r)
	}

	p, err := newPlot(sc, r.style)
	if err != nil {
		return nil, err
	}
	w := vg.Length(sc.Layout.Width*r.scale) * pxToPt
	h := vg.Length(sc.Layout.Height*r.scale) * pxToPt
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newPlot builds a gonum plot of sc. Marks are placed at the data values
// their displayed centers correspond to, so a scene captured mid-transition
// is drawn as shown.
func newPlot(sc chart.Scene, style Style) (*plot.Plot, error) {
	pal, err := newRasterPalette(style)
	if err != nil {
		return nil, err
	}
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.BackgroundColor = pal.background
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Color = pal.axis
		ax.Tick.LineStyle.Color = pal.axis
		ax.Tick.Label.Color = pal.axis
		ax.Label.TextStyle.Color = pal.active
	}
	xs, ys := sc.XAxis.Scale, sc.YAxis.Scale
	p.X.Label.Text = labelText(sc, census.AxisX)
	p.Y.Label.Text = labelText(sc, census.AxisY)
	p.X.Min, p.X.Max = xs.Domain[0], xs.Domain[1]
	p.Y.Min, p.Y.Max = ys.Domain[0], ys.Domain[1]

	pts := make(plotter.XYs, len(sc.Marks))
	abbrs := make([]string, len(sc.Marks))
	for i, m := range sc.Marks {
		pts[i].X = xs.Invert(m.Center.X)
		pts[i].Y = ys.Invert(m.Center.Y)
		abbrs[i] = m.Key
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = pal.mark
	scatter.GlyphStyle.Radius = vg.Length(sc.Radius) * pxToPt

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: abbrs})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = pal.text
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}

	p.Add(scatter, labels)
	return p, nil
}

type rasterPalette struct {
	background, mark, text, axis, active color.Color
}

func newRasterPalette(s Style) (rasterPalette, error) {
	s = s.Merge()
	var pal rasterPalette
	for _, c := range []struct {
		dst   *color.Color
		value string
		alpha float64
	}{
		{&pal.background, s.Background, 1},
		{&pal.mark, s.Mark, s.MarkOpacity},
		{&pal.text, s.MarkText, 1},
		{&pal.axis, s.Axis, 1},
		{&pal.active, s.Active, 1},
	} {
		col, err := parseColor(c.value, c.alpha)
		if err != nil {
			return rasterPalette{}, err
		}
		*c.dst = col
	}
	return pal, nil
}

// parseColor resolves a CSS color name or hex value with the given opacity.
func parseColor(s string, alpha float64) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	a := uint8(alpha*255 + 0.5)
	if rgba, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: a}, nil
	}
	if strings.HasPrefix(s, "#") && (len(s) == 4 || len(s) == 7) {
		if c, err := colorful.Hex(s); err == nil {
			r, g, b := c.RGB255()
			return color.NRGBA{R: r, G: g, B: b, A: a}, nil
		}
	}
	return nil, fmt.Errorf("unsupported color %q", s)
}
