// Package survey defines the HBSC record schema: the fixed column set, the
// per-column ordinal scales, and the canonical spellings the rest of the
// system relies on. Columns are always addressed by canonical name; unknown
// names are errors, never silent defaults.
package survey

import "fmt"

// Sentinel marks a missing answer in the raw data (observed as 999 in the
// source CSV). Sentinel values are excluded from aggregates, never coerced.
const Sentinel = 999

// Sex codes as used in the HBSC data.
type Sex int

const (
	SexBoys  Sex = 1
	SexGirls Sex = 2
)

func (s Sex) Label() string {
	switch s {
	case SexBoys:
		return "Boys"
	case SexGirls:
		return "Girls"
	default:
		return fmt.Sprintf("Sex(%d)", int(s))
	}
}

// Waves lists the survey years present in the dataset, oldest first.
var Waves = []int{2002, 2006, 2010, 2014, 2018}

// Record is one respondent-year observation. Factor answers are keyed by
// canonical column name; an absent key or a Sentinel value means the
// respondent did not answer that question.
type Record struct {
	Country    string
	Year       int
	Sex        Sex
	Age        int
	Overweight int
	Factors    map[string]int
}

// Factor returns the raw ordinal answer for one factor column. The second
// return is false when the answer is absent or a sentinel.
func (r Record) Factor(name string) (int, bool) {
	v, ok := r.Factors[name]
	if !ok || v == Sentinel {
		return 0, false
	}
	return v, true
}
