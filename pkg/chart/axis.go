package chart

import (
	"time"

	"github.com/matzehuels/censusplot/pkg/scale"
)

// Orient is the side of the plot area an axis is drawn on.
type Orient int

const (
	Bottom Orient = iota
	Left
)

func (o Orient) String() string {
	if o == Bottom {
		return "bottom"
	}
	return "left"
}

// AxisTick is a tick as displayed at some instant. Ticks entering during a
// transition fade in, ticks leaving fade out.
type AxisTick struct {
	scale.Tick
	Opacity float64 `json:"opacity"`
}

// Axis is a rendered axis bound to a scale. Rebinding it starts a
// transition from whatever is displayed at that moment.
type Axis struct {
	orient Orient
	from   scale.Linear
	to     scale.Linear
	tr     Transition
}

// NewAxis returns an axis already settled on s.
func NewAxis(orient Orient, s scale.Linear) *Axis {
	return &Axis{orient: orient, from: s, to: s}
}

func (a *Axis) Orient() Orient { return a.orient }

// Scale returns the scale the axis is bound to (the transition target).
func (a *Axis) Scale() scale.Linear { return a.to }

// Current returns the scale displayed at now.
func (a *Axis) Current(now time.Time) scale.Linear {
	if a.tr.Done(now) {
		return a.to
	}
	return scale.Lerp(a.from, a.to, a.tr.Progress(now))
}

// Settled reports whether the axis displays its bound scale at now.
func (a *Axis) Settled(now time.Time) bool { return a.tr.Done(now) }

// RenderAxis rebinds the axis to s and animates the change over d starting
// at now. A transition still in flight is replaced; the new one starts from
// the scale displayed at now.
func (a *Axis) RenderAxis(s scale.Linear, d time.Duration, now time.Time) *Axis {
	a.from = a.Current(now)
	a.to = s
	a.tr = newTransition(now, d)
	return a
}

// Ticks returns the ticks displayed at now. Each tick slides from where the
// starting scale placed its value to where the bound scale places it.
func (a *Axis) Ticks(now time.Time) []AxisTick {
	target := a.to.Ticks()
	if a.tr.Done(now) {
		out := make([]AxisTick, len(target))
		for i, t := range target {
			out[i] = AxisTick{Tick: t, Opacity: 1}
		}
		return out
	}

	p := a.tr.Progress(now)
	source := a.from.Ticks()
	inSource := make(map[float64]bool, len(source))
	for _, t := range source {
		inSource[t.Value] = true
	}
	inTarget := make(map[float64]bool, len(target))

	out := make([]AxisTick, 0, len(target)+len(source))
	for _, t := range target {
		inTarget[t.Value] = true
		op := p
		if inSource[t.Value] {
			op = 1
		}
		t.Pos = lerp(a.from.Map(t.Value), a.to.Map(t.Value), p)
		out = append(out, AxisTick{Tick: t, Opacity: op})
	}
	for _, t := range source {
		if inTarget[t.Value] {
			continue
		}
		t.Pos = lerp(a.from.Map(t.Value), a.to.Map(t.Value), p)
		out = append(out, AxisTick{Tick: t, Opacity: 1 - p})
	}
	return out
}
