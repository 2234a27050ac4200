package chart

import (
	"time"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/errors"
	"github.com/matzehuels/censusplot/pkg/scale"
)

// Selection is the pair of fields bound to the axes.
type Selection struct {
	X census.Field `json:"x"`
	Y census.Field `json:"y"`
}

// DefaultSelection is the selection a chart opens with.
var DefaultSelection = Selection{X: census.Poverty, Y: census.Healthcare}

// Get returns the field bound to axis a.
func (s Selection) Get(a census.Axis) census.Field {
	if a == census.AxisX {
		return s.X
	}
	return s.Y
}

func (s *Selection) set(f census.Field) {
	if f.Axis() == census.AxisX {
		s.X = f
	} else {
		s.Y = f
	}
}

// Validate checks that both fields are known and sit on their own axis.
func (s Selection) Validate() error {
	if _, err := census.ParseAxisField(string(s.X), census.AxisX); err != nil {
		return err
	}
	_, err := census.ParseAxisField(string(s.Y), census.AxisY)
	return err
}

// Event is a click on the axis label of Field. A zero At means "now" on the
// controller's clock.
type Event struct {
	Field census.Field
	At    time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithSelection sets the initial fields (default [DefaultSelection]).
func WithSelection(s Selection) Option { return func(c *Controller) { c.sel = s } }

// WithDuration sets the transition duration (default [DefaultDuration]).
func WithDuration(d time.Duration) Option { return func(c *Controller) { c.duration = d } }

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

// WithRadius sets the mark radius (default [DefaultRadius]).
func WithRadius(r float64) Option { return func(c *Controller) { c.radius = r } }

// WithLayout replaces the default 960x500 layout.
func WithLayout(l Layout) Option { return func(c *Controller) { c.layout = l } }

// Controller owns the axis selection of a chart and everything derived from
// it: both scales, both axes, the marks and the label groups. It is driven
// by Dispatch and is not safe for concurrent use.
type Controller struct {
	ds       *census.Dataset
	layout   Layout
	sel      Selection
	duration time.Duration
	radius   float64
	now      func() time.Time

	scales [2]scale.Linear
	axes   [2]*Axis
	labels [2]*LabelGroup
	marks  *Marks
	until  time.Time // end of the latest transition
}

// NewController builds a settled chart of ds.
func NewController(ds *census.Dataset, opts ...Option) (*Controller, error) {
	c := &Controller{
		ds:       ds,
		layout:   DefaultLayout(),
		sel:      DefaultSelection,
		duration: DefaultDuration,
		radius:   DefaultRadius,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.layout.Validate(); err != nil {
		return nil, err
	}
	if err := c.sel.Validate(); err != nil {
		return nil, err
	}
	if c.duration < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "negative transition duration: %s", c.duration)
	}

	for _, a := range []census.Axis{census.AxisX, census.AxisY} {
		s, err := scale.Compute(ds, c.sel.Get(a), c.layout.Range(a))
		if err != nil {
			return nil, err
		}
		c.scales[a] = s
		c.labels[a] = NewLabelGroup(c.layout, a, c.sel.Get(a))
	}
	c.axes[census.AxisX] = NewAxis(Bottom, c.scales[census.AxisX])
	c.axes[census.AxisY] = NewAxis(Left, c.scales[census.AxisY])
	c.marks = NewMarks(ds)
	c.marks.RenderMarks(c.scales[census.AxisX], c.scales[census.AxisY], c.sel.X, c.sel.Y, 0, c.now())
	return c, nil
}

// Dispatch handles a label click. It reports whether the selection changed.
//
// Clicking the active label of an axis changes nothing. Clicking another
// label of the same axis rebinds that axis: its scale is recomputed, the axis
// and all marks transition to the new scale and the clicked label becomes
// the only active one on that axis. The other axis is left alone. An unknown
// field is rejected with INVALID_FIELD and no state change.
func (c *Controller) Dispatch(ev Event) (bool, error) {
	f, err := census.ParseField(string(ev.Field))
	if err != nil {
		return false, err
	}
	a := f.Axis()
	if c.sel.Get(a) == f {
		return false, nil
	}

	s, err := scale.Compute(c.ds, f, c.layout.Range(a))
	if err != nil {
		return false, err
	}

	at := ev.At
	if at.IsZero() {
		at = c.now()
	}
	c.sel.set(f)
	c.scales[a] = s
	c.axes[a].RenderAxis(s, c.duration, at)
	c.marks.RenderMarks(c.scales[census.AxisX], c.scales[census.AxisY], c.sel.X, c.sel.Y, c.duration, at)
	c.labels[a].Activate(f)
	if end := at.Add(c.duration); end.After(c.until) {
		c.until = end
	}
	return true, nil
}

// Click dispatches a click on the label of f at the current time.
func (c *Controller) Click(f census.Field) (bool, error) {
	return c.Dispatch(Event{Field: f})
}

func (c *Controller) Selection() Selection            { return c.sel }
func (c *Controller) Dataset() *census.Dataset        { return c.ds }
func (c *Controller) Layout() Layout                  { return c.layout }
func (c *Controller) Duration() time.Duration         { return c.duration }
func (c *Controller) Radius() float64                 { return c.radius }
func (c *Controller) Marks() *Marks                   { return c.marks }
func (c *Controller) Axis(a census.Axis) *Axis        { return c.axes[a] }
func (c *Controller) Scale(a census.Axis) scale.Linear { return c.scales[a] }

// Labels returns the labels of axis a.
func (c *Controller) Labels(a census.Axis) []Label { return c.labels[a].Labels() }

// Now returns the current time on the controller's clock.
func (c *Controller) Now() time.Time { return c.now() }

// Settled reports whether every transition has completed at now.
func (c *Controller) Settled(now time.Time) bool {
	return c.axes[census.AxisX].Settled(now) && c.axes[census.AxisY].Settled(now) && c.marks.Settled(now)
}

// SettledAt returns when the latest transition completes.
func (c *Controller) SettledAt() time.Time { return c.until }
