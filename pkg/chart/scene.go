package chart

import (
	"time"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/scale"
)

// Scene is everything a sink needs to draw the chart at one instant.
type Scene struct {
	DatasetID string        `json:"dataset_id"`
	Source    string        `json:"source"`
	Layout    Layout        `json:"layout"`
	Selection Selection     `json:"selection"`
	Duration  time.Duration `json:"duration"`
	Radius    float64       `json:"radius"`
	Settled   bool          `json:"settled"`

	XAxis  AxisScene   `json:"x_axis"`
	YAxis  AxisScene   `json:"y_axis"`
	Marks  []MarkScene `json:"marks"`
	Labels []Label     `json:"labels"`

	// Scales holds the scale of every field, for sinks that switch fields
	// without going back through a Controller.
	Scales map[census.Field]scale.Linear `json:"scales"`
}

// AxisScene is an axis as displayed.
type AxisScene struct {
	Orient Orient       `json:"orient"`
	Scale  scale.Linear `json:"scale"`
	Ticks  []AxisTick   `json:"ticks"`
}

// MarkScene is a mark as displayed.
type MarkScene struct {
	Key     string        `json:"key"`
	Record  census.Record `json:"record"`
	Center  Point         `json:"center"`
	Label   Point         `json:"label"`
	Tooltip Tooltip       `json:"tooltip"`
}

// Scene resolves the chart at now.
func (c *Controller) Scene(now time.Time) Scene {
	sc := Scene{
		DatasetID: c.ds.ID.String(),
		Source:    c.ds.Source,
		Layout:    c.layout,
		Selection: c.sel,
		Duration:  c.duration,
		Radius:    c.radius,
		Settled:   c.Settled(now),
		XAxis:     c.axisScene(census.AxisX, now),
		YAxis:     c.axisScene(census.AxisY, now),
		Scales:    c.fieldScales(),
	}
	for _, mk := range c.marks.order {
		sc.Marks = append(sc.Marks, MarkScene{
			Key:     mk.Key,
			Record:  mk.Record,
			Center:  mk.Position(now),
			Label:   mk.LabelPosition(now),
			Tooltip: tooltipFor(mk.Record),
		})
	}
	sc.Labels = append(c.labels[census.AxisX].Labels(), c.labels[census.AxisY].Labels()...)
	return sc
}

// Settle resolves the chart once every transition has completed.
func (c *Controller) Settle() Scene {
	now := c.now()
	if c.until.After(now) {
		now = c.until
	}
	return c.Scene(now)
}

func (c *Controller) axisScene(a census.Axis, now time.Time) AxisScene {
	ax := c.axes[a]
	return AxisScene{Orient: ax.Orient(), Scale: ax.Current(now), Ticks: ax.Ticks(now)}
}

// fieldScales computes the scale of every field. The dataset was validated
// on load, so a field that fails to scale is left out.
func (c *Controller) fieldScales() map[census.Field]scale.Linear {
	out := make(map[census.Field]scale.Linear, len(census.AllFields()))
	for _, f := range census.AllFields() {
		if s, err := scale.Compute(c.ds, f, c.layout.Range(f.Axis())); err == nil {
			out[f] = s
		}
	}
	return out
}

// Mark returns the displayed mark with key, if any.
func (s Scene) Mark(key string) (MarkScene, bool) {
	for _, m := range s.Marks {
		if m.Key == key {
			return m, true
		}
	}
	return MarkScene{}, false
}

// ActiveLabel returns the active label of axis a.
func (s Scene) ActiveLabel(a census.Axis) (Label, bool) {
	for _, l := range s.Labels {
		if l.Field.Axis() == a && l.Active {
			return l, true
		}
	}
	return Label{}, false
}
