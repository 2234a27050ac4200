package chart

import (
	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/errors"
	"github.com/matzehuels/censusplot/pkg/scale"
)

const (
	DefaultWidth  = 960.0
	DefaultHeight = 500.0

	// LabelSpacing separates stacked axis labels.
	LabelSpacing = 20.0
)

// DefaultMargin leaves room for tick labels and three stacked axis labels.
var DefaultMargin = Margin{Top: 20, Right: 40, Bottom: 80, Left: 100}

// Margin is the space between the canvas edge and the plot area.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Point is a position in plot coordinates: the origin is the top-left corner
// of the plot area and y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout is the fixed geometry of the chart.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultLayout returns the 960x500 canvas.
func DefaultLayout() Layout {
	return Layout{Width: DefaultWidth, Height: DefaultHeight, Margin: DefaultMargin}
}

func (l Layout) PlotWidth() float64  { return l.Width - l.Margin.Left - l.Margin.Right }
func (l Layout) PlotHeight() float64 { return l.Height - l.Margin.Top - l.Margin.Bottom }

// Validate checks that the margins leave a non-empty plot area.
func (l Layout) Validate() error {
	if l.PlotWidth() <= 0 || l.PlotHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout %gx%g leaves no plot area", l.Width, l.Height)
	}
	return nil
}

// Range returns the pixel range of axis a. The vertical range is inverted so
// larger values are drawn higher.
func (l Layout) Range(a census.Axis) scale.Range {
	if a == census.AxisX {
		return scale.Range{0, l.PlotWidth()}
	}
	return scale.Range{l.PlotHeight(), 0}
}

// LabelAnchor places an axis label. Rotate is in degrees around the anchor.
type LabelAnchor struct {
	Point
	Rotate float64 `json:"rotate,omitempty"`
}

// LabelAnchor returns where the i-th label of axis a is drawn. X labels are
// stacked below the plot, centered; Y labels are rotated and stacked from
// the left canvas edge towards the axis.
func (l Layout) LabelAnchor(a census.Axis, i int) LabelAnchor {
	step := LabelSpacing * float64(i)
	if a == census.AxisX {
		return LabelAnchor{Point: Point{X: l.PlotWidth() / 2, Y: l.PlotHeight() + LabelSpacing + LabelSpacing + step}}
	}
	return LabelAnchor{Point: Point{X: -l.Margin.Left + step + LabelSpacing/2, Y: l.PlotHeight() / 2}, Rotate: -90}
}
