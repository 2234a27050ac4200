package scale

import (
	"fmt"
	"math"

	mscale "github.com/aclements/go-moremath/scale"
	"gonum.org/v1/plot"

	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/errors"
)

// Padding is the fraction of each extreme's magnitude added beyond it.
// For positive data the domain is [min*0.8, max*1.2].
const Padding = 0.2

// Range is a pixel interval. Range[0] is where the domain minimum lands.
type Range [2]float64

// Span returns Range[1] - Range[0], negative for inverted ranges.
func (r Range) Span() float64 { return r[1] - r[0] }

// Tick is a labelled tick mark of a scale.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Linear is a linear mapping from a padded data domain to a pixel range.
type Linear struct {
	Field  census.Field `json:"field"`
	Domain [2]float64   `json:"domain"`
	Range  Range        `json:"range"`
}

// Compute derives the scale of field f over ds onto rng.
//
// It returns EMPTY_DATASET when ds has no records and INVALID_FIELD when f is
// not a known field.
func Compute(ds *census.Dataset, f census.Field, rng Range) (Linear, error) {
	lo, hi, err := ds.Extent(f)
	if err != nil {
		return Linear{}, err
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Linear{}, errors.New(errors.ErrCodeInvalidDataset, "field %s contains non-numeric values", f)
	}
	d0, d1 := Pad(lo, hi)
	return Linear{Field: f, Domain: [2]float64{d0, d1}, Range: rng}, nil
}

// Pad widens [lo, hi] by [Padding] of each bound's magnitude. A degenerate
// interval (both bounds zero) becomes [-1, 1].
func Pad(lo, hi float64) (float64, float64) {
	lo -= Padding * math.Abs(lo)
	hi += Padding * math.Abs(hi)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

func (s Linear) normalizer() mscale.Linear {
	return mscale.Linear{Min: s.Domain[0], Max: s.Domain[1]}
}

// Map returns the pixel coordinate of v.
func (s Linear) Map(v float64) float64 {
	return s.Range[0] + s.normalizer().Map(v)*s.Range.Span()
}

// Invert returns the data value drawn at pixel px.
func (s Linear) Invert(px float64) float64 {
	if s.Range.Span() == 0 {
		return s.Domain[0]
	}
	return s.normalizer().Unmap((px - s.Range[0]) / s.Range.Span())
}

// Contains reports whether v lies inside the domain.
func (s Linear) Contains(v float64) bool {
	return v >= s.Domain[0] && v <= s.Domain[1]
}

// Ticks returns the labelled major ticks inside the domain.
func (s Linear) Ticks() []Tick {
	var ticks []Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(s.Domain[0], s.Domain[1]) {
		if t.IsMinor() || !s.Contains(t.Value) {
			continue
		}
		ticks = append(ticks, Tick{Value: t.Value, Pos: s.Map(t.Value), Label: t.Label})
	}
	return ticks
}

// Equal reports whether s and o describe the same mapping of the same field.
func (s Linear) Equal(o Linear) bool {
	return s.Field == o.Field && s.Domain == o.Domain && s.Range == o.Range
}

// String implements fmt.Stringer.
func (s Linear) String() string {
	return fmt.Sprintf("%s: [%g, %g] -> [%g, %g]", s.Field, s.Domain[0], s.Domain[1], s.Range[0], s.Range[1])
}

// Lerp returns the scale t of the way from a to b, interpolating domain and
// range. The field of the result is b's. t is clamped to [0, 1].
func Lerp(a, b Linear, t float64) Linear {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	return Linear{
		Field:  b.Field,
		Domain: [2]float64{mix(a.Domain[0], b.Domain[0]), mix(a.Domain[1], b.Domain[1])},
		Range:  Range{mix(a.Range[0], b.Range[0]), mix(a.Range[1], b.Range[1])},
	}
}
