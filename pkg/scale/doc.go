// Package scale maps dataset values to pixel coordinates.
//
// [Compute] derives a [Linear] scale from a dataset column: the domain is
// the column's extent padded by [Padding] on each side so the extreme
// records are never drawn on the edge of the plot, and the range is the
// pixel interval of the axis. Vertical axes pass an inverted range so that
// larger values are drawn higher up:
//
//	xs, err := scale.Compute(ds, census.Poverty, scale.Range{0, 820})
//	ys, err := scale.Compute(ds, census.Healthcare, scale.Range{400, 0})
//
// A Linear is an immutable value. Selecting a different column computes a
// new scale; nothing is ever mutated in place.
package scale
