package sink

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/censusplot/pkg/chart"
)

// TerminalStyles colors a terminal rendering.
type TerminalStyles struct {
	Axis      lipgloss.Style
	Tick      lipgloss.Style
	Mark      lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultTerminalStyles matches the SVG palette as closely as a terminal can.
func DefaultTerminalStyles() TerminalStyles {
	return TerminalStyles{
		Axis:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Tick:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Mark:      lipgloss.NewStyle().Foreground(lipgloss.Color("#008b8b")).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00cdcd")).Bold(true),
	}
}

// TerminalOption configures [RenderTerminal].
type TerminalOption func(*terminalRenderer)

type terminalRenderer struct {
	styles    TerminalStyles
	highlight string
}

// WithTerminalStyles replaces the default styles.
func WithTerminalStyles(s TerminalStyles) TerminalOption {
	return func(r *terminalRenderer) { r.styles = s }
}

// WithHighlight draws the mark with key on top, highlighted.
func WithHighlight(key string) TerminalOption {
	return func(r *terminalRenderer) { r.highlight = key }
}

// RenderTerminal draws sc into a width x height block of terminal cells.
// Marks are drawn as their abbreviations.
func RenderTerminal(sc chart.Scene, width, height int, opts ...TerminalOption) string {
	r := terminalRenderer{styles: DefaultTerminalStyles()}
	for _, opt := range opts {
		opt(&r)
	}
	if width < 8 || height < 4 {
		return ""
	}

	gutter := 0
	for _, t := range sc.YAxis.Ticks {
		gutter = max(gutter, len(t.Label))
	}
	origin := canvas.Point{X: gutter, Y: height - 2}
	g := grid{
		origin: origin,
		cols:   width - gutter - 1,
		rows:   height - 2,
		plotW:  sc.Layout.PlotWidth(),
		plotH:  sc.Layout.PlotHeight(),
	}

	c := canvas.New(width, height)
	graph.DrawXYAxis(&c, origin, r.styles.Axis)

	for _, t := range sc.XAxis.Ticks {
		if t.Opacity < 0.5 {
			continue
		}
		col := g.col(t.Pos) - len(t.Label)/2
		if col >= origin.X && col+len(t.Label) <= width {
			c.SetStringWithStyle(canvas.Point{X: col, Y: origin.Y + 1}, t.Label, r.styles.Tick)
		}
	}
	for _, t := range sc.YAxis.Ticks {
		if t.Opacity < 0.5 {
			continue
		}
		c.SetStringWithStyle(canvas.Point{X: origin.X - len(t.Label), Y: g.row(t.Pos)}, t.Label, r.styles.Tick)
	}

	var top *chart.MarkScene
	for i, m := range sc.Marks {
		if m.Key == r.highlight {
			top = &sc.Marks[i]
			continue
		}
		g.put(&c, m, r.styles.Mark)
	}
	if top != nil {
		g.put(&c, *top, r.styles.Highlight)
	}
	return c.View()
}

// grid maps plot coordinates onto the cells right of and above origin.
type grid struct {
	origin       canvas.Point
	cols, rows   int
	plotW, plotH float64
}

func (g grid) col(x float64) int {
	c := int(math.Round(x / g.plotW * float64(g.cols-1)))
	return g.origin.X + 1 + clamp(c, 0, g.cols-1)
}

func (g grid) row(y float64) int {
	r := int(math.Round((g.plotH - y) / g.plotH * float64(g.rows-1)))
	return g.origin.Y - 1 - clamp(r, 0, g.rows-1)
}

func (g grid) put(c *canvas.Model, m chart.MarkScene, style lipgloss.Style) {
	x := g.col(m.Center.X) - len(m.Key)/2
	x = clamp(x, g.origin.X+1, g.origin.X+g.cols-len(m.Key)+1)
	c.SetStringWithStyle(canvas.Point{X: x, Y: g.row(m.Center.Y)}, m.Key, style)
}

func clamp(v, lo, hi int) int { return max(lo, min(v, hi)) }
