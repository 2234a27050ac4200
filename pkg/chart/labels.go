package chart

import "github.com/matzehuels/censusplot/pkg/census"

// Label is a clickable axis label.
type Label struct {
	Field  census.Field `json:"field"`
	Text   string       `json:"text"`
	Anchor LabelAnchor  `json:"anchor"`
	Active bool         `json:"active"`
}

// LabelGroup holds the candidate labels of one axis. Exactly one of them is
// active at any time.
type LabelGroup struct {
	axis   census.Axis
	labels []Label
}

// NewLabelGroup creates the labels of axis a with active marked active.
func NewLabelGroup(l Layout, a census.Axis, active census.Field) *LabelGroup {
	g := &LabelGroup{axis: a}
	for i, f := range census.FieldsFor(a) {
		g.labels = append(g.labels, Label{
			Field:  f,
			Text:   f.Label(),
			Anchor: l.LabelAnchor(a, i),
		})
	}
	g.Activate(active)
	return g
}

func (g *LabelGroup) Axis() census.Axis { return g.axis }

// Activate marks the label of f active and all of its siblings inactive.
func (g *LabelGroup) Activate(f census.Field) {
	for i := range g.labels {
		g.labels[i].Active = g.labels[i].Field == f
	}
}

// Active returns the field of the active label.
func (g *LabelGroup) Active() census.Field {
	for _, l := range g.labels {
		if l.Active {
			return l.Field
		}
	}
	return ""
}

// Labels returns a copy of the labels in stacking order.
func (g *LabelGroup) Labels() []Label {
	return append([]Label(nil), g.labels...)
}
