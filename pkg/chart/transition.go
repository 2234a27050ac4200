package chart

import (
	"math"
	"time"
)

// DefaultDuration is the length of every axis and mark transition.
const DefaultDuration = time.Second

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// CubicInOut accelerates through the first half and decelerates through the
// second.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Transition is a timed interpolation window.
type Transition struct {
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

func newTransition(start time.Time, d time.Duration) Transition {
	return Transition{Start: start, Duration: d, Ease: CubicInOut}
}

// Progress returns the eased progress at now, clamped to [0, 1].
// A zero Transition is always complete.
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	p = math.Max(0, math.Min(1, p))
	if t.Ease != nil {
		return t.Ease(p)
	}
	return p
}

// End returns when the transition completes.
func (t Transition) End() time.Time { return t.Start.Add(t.Duration) }

// Done reports whether the transition has completed at now.
func (t Transition) Done(now time.Time) bool {
	return t.Duration <= 0 || !now.Before(t.End())
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func lerpPoint(a, b Point, t float64) Point {
	return Point{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}
