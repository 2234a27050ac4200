package census

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/censusplot/pkg/errors"
)

// datasetNamespace scopes dataset IDs so they never collide with other
// name-based UUIDs derived from the same bytes.
var datasetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/censusplot/dataset"))

// Record is one row of the dataset: the statistics of a single U.S. state.
type Record struct {
	State      string  `json:"state"`
	Abbr       string  `json:"abbr"`
	Poverty    float64 `json:"poverty"`
	Age        float64 `json:"age"`
	Income     float64 `json:"income"`
	Healthcare float64 `json:"healthcare"`
	Obesity    float64 `json:"obesity"`
	Smokes     float64 `json:"smokes"`
}

// Value returns the value of field f, or NaN if f is unknown.
func (r Record) Value(f Field) float64 {
	switch f {
	case Poverty:
		return r.Poverty
	case Age:
		return r.Age
	case Income:
		return r.Income
	case Healthcare:
		return r.Healthcare
	case Obesity:
		return r.Obesity
	case Smokes:
		return r.Smokes
	}
	return math.NaN()
}

// Dataset is the ordered, read-only sequence of records.
type Dataset struct {
	// ID identifies the dataset content. Equal bytes give equal IDs.
	ID uuid.UUID

	// Source is the path or URL the dataset was loaded from.
	Source string

	records []Record
	index   map[string]int
}

// NewDataset builds a Dataset from already validated records.
// Abbreviations must be unique; NewDataset returns INVALID_DATASET otherwise.
func NewDataset(source string, raw []byte, records []Record) (*Dataset, error) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		if r.Abbr == "" {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset,
				&errors.CellError{Row: i + 1, Column: "abbr", Reason: "abbreviation is empty"},
				"invalid dataset")
		}
		if _, dup := index[r.Abbr]; dup {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset,
				&errors.CellError{Row: i + 1, Column: "abbr", Value: r.Abbr, Reason: "duplicate abbreviation"},
				"invalid dataset")
		}
		index[r.Abbr] = i
	}
	return &Dataset{
		ID:      uuid.NewSHA1(datasetNamespace, raw),
		Source:  source,
		records: records,
		index:   index,
	}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the records in load order.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

// At returns the i-th record.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Lookup returns the record with the given abbreviation.
func (d *Dataset) Lookup(abbr string) (Record, bool) {
	i, ok := d.index[abbr]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// Extent returns the minimum and maximum of f across all records.
func (d *Dataset) Extent(f Field) (lo, hi float64, err error) {
	if !f.Valid() {
		return 0, 0, errors.New(errors.ErrCodeInvalidField, "unknown field: %q", string(f))
	}
	if len(d.records) == 0 {
		return 0, 0, errors.New(errors.ErrCodeEmptyDataset, "dataset has no records")
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range d.records {
		v := r.Value(f)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, nil
}
