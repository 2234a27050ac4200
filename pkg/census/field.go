package census

import (
	"github.com/matzehuels/censusplot/pkg/errors"
)

// Field names one of the numeric columns that can be bound to an axis.
type Field string

// The six selectable fields. The first three are X axis candidates, the
// last three Y axis candidates.
const (
	Poverty    Field = "poverty"
	Age        Field = "age"
	Income     Field = "income"
	Healthcare Field = "healthcare"
	Smokes     Field = "smokes"
	Obesity    Field = "obesity"
)

// Axis identifies the horizontal or vertical axis of the chart.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Other returns the opposite axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

type fieldInfo struct {
	axis  Axis
	label string
}

var fields = map[Field]fieldInfo{
	Poverty:    {AxisX, "In Poverty (%)"},
	Age:        {AxisX, "Age (Median)"},
	Income:     {AxisX, "Household Income (Median)"},
	Healthcare: {AxisY, "Lacks Healthcare (%)"},
	Smokes:     {AxisY, "Smokes (%)"},
	Obesity:    {AxisY, "Obese (%)"},
}

// xFields and yFields fix the order in which labels are stacked.
var (
	xFields = []Field{Poverty, Age, Income}
	yFields = []Field{Healthcare, Smokes, Obesity}
)

// AllFields returns the six fields, X candidates first.
func AllFields() []Field {
	return append(append([]Field{}, xFields...), yFields...)
}

// FieldsFor returns the candidate fields of an axis in label order.
func FieldsFor(a Axis) []Field {
	if a == AxisX {
		return append([]Field{}, xFields...)
	}
	return append([]Field{}, yFields...)
}

// Valid reports whether f is one of the six known fields.
func (f Field) Valid() bool {
	_, ok := fields[f]
	return ok
}

// Axis returns the axis f belongs to. It is only meaningful for valid fields.
func (f Field) Axis() Axis {
	return fields[f].axis
}

// Label returns the axis label text shown for f.
func (f Field) Label() string {
	if info, ok := fields[f]; ok {
		return info.label
	}
	return string(f)
}

// ParseField converts s to a Field, rejecting anything that is not one of
// the six known names.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", errors.New(errors.ErrCodeInvalidField, "unknown field: %q", s)
	}
	return f, nil
}

// ParseAxisField parses s and checks that it belongs to axis a.
func ParseAxisField(s string, a Axis) (Field, error) {
	f, err := ParseField(s)
	if err != nil {
		return "", err
	}
	if f.Axis() != a {
		return "", errors.New(errors.ErrCodeInvalidField, "field %q cannot be used on the %s axis", s, a)
	}
	return f, nil
}
