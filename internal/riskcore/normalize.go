// Package riskcore is the shared analytics core: it rescales raw ordinal
// survey answers onto a common 0–1 risk axis (0 = healthiest, 1 = riskiest),
// ranks factors by association with the overweight outcome, computes group
// means and gaps, and scores individual profiles.
//
// Every function here is pure: inputs are never mutated, there is no I/O and
// no retained state, so concurrent callers need no coordination.
package riskcore

import (
	"fmt"

	"github.com/hbsc-labs/insight/internal/survey"
)

// Normalized is one respondent-year observation with every factor rescaled
// to [0,1] on the risk axis. Values omits factors the respondent did not
// answer. Produced only by NormalizeRecords; keeping raw and normalized data
// in distinct types is what prevents accidental double normalization.
type Normalized struct {
	Country    string
	Year       int
	Sex        survey.Sex
	Age        int
	Overweight int
	Values     map[string]float64
}

// Normalize maps one raw ordinal answer onto the 0–1 risk axis: v/max, or
// 1 - v/max when the scale is reversed. An out-of-range or sentinel value
// returns ErrMissingValue; an unusable descriptor returns
// ErrMissingScaleDescriptor.
func Normalize(v int, s survey.Scale) (float64, error) {
	if s.Max < 1 {
		return 0, ErrMissingScaleDescriptor
	}
	if v < 1 || v > s.Max {
		return 0, ErrMissingValue
	}
	n := float64(v) / float64(s.Max)
	if s.Reversed {
		n = 1 - n
	}
	return n, nil
}

// NormalizeRecords rescales the given factor columns across a record slice.
// Missing or sentinel answers are left out of the per-record Values map; the
// record itself is kept so aggregates over other fields still see it. A
// factor without a configured scale aborts the whole call.
func NormalizeRecords(records []survey.Record, scales survey.ScaleTable, fields []string) ([]Normalized, error) {
	for _, f := range fields {
		if _, ok := scales.Lookup(f); !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingScaleDescriptor, f)
		}
	}

	out := make([]Normalized, 0, len(records))
	for _, r := range records {
		n := Normalized{
			Country:    r.Country,
			Year:       r.Year,
			Sex:        r.Sex,
			Age:        r.Age,
			Overweight: r.Overweight,
			Values:     make(map[string]float64, len(fields)),
		}
		for _, f := range fields {
			raw, ok := r.Factor(f)
			if !ok {
				continue
			}
			s, _ := scales.Lookup(f)
			v, err := Normalize(raw, s)
			if err != nil {
				// Out of range counts as missing for this field only.
				continue
			}
			n.Values[f] = v
		}
		out = append(out, n)
	}
	return out, nil
}
