package census

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/censusplot/pkg/errors"
)

const (
	colState = "state"
	colAbbr  = "abbr"
)

// Parse reads a CSV dataset from r. source is recorded on the Dataset and
// used in error messages.
func Parse(r io.Reader, source string) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read %s", source)
	}
	return ParseBytes(raw, source)
}

// ParseBytes parses a CSV dataset held in memory.
func ParseBytes(raw []byte, source string) (*Dataset, error) {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "%s: no header row", source)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s: read header", source)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s", source)
	}

	var records []Record
	for row := 1; ; row++ {
		line, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s: row %d", source, row)
		}
		rec, err := parseRecord(line, cols, row)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "%s", source)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "%s: dataset has no records", source)
	}
	return NewDataset(source, raw, records)
}

// columns maps required column names to their positions in the header.
type columns map[string]int

func columnIndex(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}

	required := []string{colState, colAbbr}
	for _, f := range AllFields() {
		required = append(required, string(f))
	}
	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "missing required column(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRecord(line []string, cols columns, row int) (Record, error) {
	cell := func(name string) string {
		if i := cols[name]; i < len(line) {
			return strings.TrimSpace(line[i])
		}
		return ""
	}

	rec := Record{
		State: cell(colState),
		Abbr:  cell(colAbbr),
	}
	for _, f := range AllFields() {
		v, reason := parseNumber(cell(string(f)))
		if reason != "" {
			return Record{}, &errors.CellError{Row: row, Column: string(f), Value: cell(string(f)), Reason: reason}
		}
		switch f {
		case Poverty:
			rec.Poverty = v
		case Age:
			rec.Age = v
		case Income:
			rec.Income = v
		case Healthcare:
			rec.Healthcare = v
		case Obesity:
			rec.Obesity = v
		case Smokes:
			rec.Smokes = v
		}
	}
	return rec, nil
}

// parseNumber returns the value of s, or a non-empty reason why it is not
// a usable number.
func parseNumber(s string) (float64, string) {
	if s == "" {
		return 0, "empty numeric cell"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "not a number"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "not a finite number"
	}
	return v, ""
}
