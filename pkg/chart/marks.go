package chart

import (
	"fmt"
	"time"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/scale"
)

const (
	// DefaultRadius is the circle radius of a mark.
	DefaultRadius = 15.0

	// LabelOffset shifts the abbreviation below the circle center so it
	// reads as vertically centered.
	LabelOffset = 5.0
)

// Mark is the circle and abbreviation label drawn for one record. A Mark is
// created once per record and only ever moved.
type Mark struct {
	Key    string
	Record census.Record

	from Point
	to   Point
	tr   Transition
}

// Position returns the circle center displayed at now.
func (m *Mark) Position(now time.Time) Point {
	if m.tr.Done(now) {
		return m.to
	}
	return lerpPoint(m.from, m.to, m.tr.Progress(now))
}

// LabelPosition returns the abbreviation anchor displayed at now.
func (m *Mark) LabelPosition(now time.Time) Point {
	p := m.Position(now)
	p.Y += LabelOffset
	return p
}

// Target returns where the mark is heading.
func (m *Mark) Target() Point { return m.to }

func (m *Mark) moveTo(p Point, d time.Duration, now time.Time) {
	m.from = m.Position(now)
	m.to = p
	m.tr = newTransition(now, d)
}

// Marks is an arena of marks keyed by record abbreviation, kept in dataset
// order.
type Marks struct {
	order []*Mark
	byKey map[string]*Mark
}

// NewMarks creates one mark per record of ds, all at the origin.
func NewMarks(ds *census.Dataset) *Marks {
	m := &Marks{
		order: make([]*Mark, 0, ds.Len()),
		byKey: make(map[string]*Mark, ds.Len()),
	}
	for _, r := range ds.Records() {
		mk := &Mark{Key: r.Abbr, Record: r}
		m.order = append(m.order, mk)
		m.byKey[r.Abbr] = mk
	}
	return m
}

func (m *Marks) Len() int { return len(m.order) }

// Get returns the mark for key.
func (m *Marks) Get(key string) (*Mark, bool) {
	mk, ok := m.byKey[key]
	return mk, ok
}

// All returns the marks in dataset order. The pointers are the arena's own.
func (m *Marks) All() []*Mark {
	return append([]*Mark(nil), m.order...)
}

// RenderMarks moves every mark to its position under xs and ys over d
// starting at now. Marks in flight start from their displayed position.
func (m *Marks) RenderMarks(xs, ys scale.Linear, xField, yField census.Field, d time.Duration, now time.Time) {
	for _, mk := range m.order {
		mk.moveTo(Point{
			X: xs.Map(mk.Record.Value(xField)),
			Y: ys.Map(mk.Record.Value(yField)),
		}, d, now)
	}
}

// Settled reports whether every mark has reached its target at now.
func (m *Marks) Settled(now time.Time) bool {
	for _, mk := range m.order {
		if !mk.tr.Done(now) {
			return false
		}
	}
	return true
}

// Tooltip is shown when a mark is clicked.
type Tooltip struct {
	State      string  `json:"state"`
	Poverty    float64 `json:"poverty"`
	Healthcare float64 `json:"healthcare"`
}

// Lines returns the tooltip text, one entry per line.
func (t Tooltip) Lines() []string {
	return []string{
		t.State,
		fmt.Sprintf("%% Poverty: %g", t.Poverty),
		fmt.Sprintf("%% Healthcare: %g", t.Healthcare),
	}
}

// Tooltip returns the tooltip of the mark keyed by key.
func (m *Marks) Tooltip(key string) (Tooltip, bool) {
	mk, ok := m.byKey[key]
	if !ok {
		return Tooltip{}, false
	}
	return tooltipFor(mk.Record), true
}

func tooltipFor(r census.Record) Tooltip {
	return Tooltip{State: r.State, Poverty: r.Poverty, Healthcare: r.Healthcare}
}
