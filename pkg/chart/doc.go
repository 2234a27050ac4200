// Package chart computes the interactive scatter plot of a census dataset.
//
// # Overview
//
// A [Controller] owns the current [Selection] (the field on each axis) and
// everything derived from it:
//
//   - one [scale.Linear] per axis, recomputed whenever that axis is rebound
//   - one [Axis] per axis, which animates between scales
//   - the [Marks] arena, one [Mark] per record keyed by its abbreviation
//   - one [LabelGroup] per axis, with exactly one active label
//
// The controller is driven by label clicks:
//
//	c, err := chart.NewController(ds)
//	changed, err := c.Dispatch(chart.Event{Field: census.Age})
//
// Clicking the label that is already active does nothing. Clicking a sibling
// rebinds that axis only: its scale is recomputed, the axis and every mark
// transition to the new positions, and the clicked label becomes active.
//
// # Transitions
//
// Transitions last [DefaultDuration] with cubic in-out easing. A click that
// arrives while a transition is still running replaces it: axes and marks
// start again from where they are displayed at that instant, so the last
// selection always wins and nothing is left drawn against an old scale.
//
// Time is explicit. [Controller.Scene] resolves the chart at a given
// instant into a plain [Scene] value, which the renderers in the sink
// package turn into SVG, PNG, PDF, JSON or terminal output.
//
// # Geometry
//
// [DefaultLayout] is a 960x500 canvas with margins of 20, 40, 80 and 100
// (top, right, bottom, left). All positions in a Scene are relative to the
// top-left corner of the plot area.
package chart
