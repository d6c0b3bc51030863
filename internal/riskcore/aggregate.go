package riskcore

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/hbsc-labs/insight/internal/survey"
)

// GroupKey selects the dimension records are grouped on.
type GroupKey string

const (
	BySex     GroupKey = "sex"
	ByCountry GroupKey = "country"
	ByAge     GroupKey = "age"
	ByYear    GroupKey = "year"
)

func groupValue(key GroupKey, country string, year int, sex survey.Sex, age int) (string, error) {
	switch key {
	case BySex:
		return sex.Label(), nil
	case ByCountry:
		return country, nil
	case ByAge:
		return strconv.Itoa(age), nil
	case ByYear:
		return strconv.Itoa(year), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGroupKey, key)
	}
}

// GroupMeans computes, per group, the mean of each normalized field. A
// record missing field F is excluded from F's mean only; it still counts
// toward every other field it answered.
func GroupMeans(records []Normalized, key GroupKey, fields []string) (map[string]map[string]float64, error) {
	sums := map[string]map[string]float64{}
	counts := map[string]map[string]int{}
	for _, r := range records {
		g, err := groupValue(key, r.Country, r.Year, r.Sex, r.Age)
		if err != nil {
			return nil, err
		}
		if sums[g] == nil {
			sums[g] = map[string]float64{}
			counts[g] = map[string]int{}
		}
		for _, f := range fields {
			v, ok := r.Values[f]
			if !ok {
				continue
			}
			sums[g][f] += v
			counts[g][f]++
		}
	}

	out := make(map[string]map[string]float64, len(sums))
	for g, fieldSums := range sums {
		means := make(map[string]float64, len(fieldSums))
		for f, sum := range fieldSums {
			means[f] = sum / float64(counts[g][f])
		}
		out[g] = means
	}
	return out, nil
}

// GapRow is the signed difference in mean normalized value between two
// groups for one field: Gap = mean(B) - mean(A). DominantSide names the
// group with the higher mean; a zero gap reports side A.
type GapRow struct {
	Field        string  `json:"field"`
	Alias        string  `json:"alias"`
	MeanA        float64 `json:"mean_a"`
	MeanB        float64 `json:"mean_b"`
	Gap          float64 `json:"gap"`
	DominantSide string  `json:"dominant_side"`
}

// GroupGap computes per-field gaps between exactly two groups. Both groups
// must be present in the records or the call returns ErrInsufficientGroups.
// Fields with no data on either side are left out. Rows come back sorted by
// |gap| descending, field name ascending on ties.
func GroupGap(records []Normalized, key GroupKey, groupA, groupB string, fields []string) ([]GapRow, error) {
	means, err := GroupMeans(records, key, fields)
	if err != nil {
		return nil, err
	}
	ma, okA := means[groupA]
	mb, okB := means[groupB]
	if !okA || !okB {
		return nil, fmt.Errorf("%w: need %q and %q", ErrInsufficientGroups, groupA, groupB)
	}

	rows := make([]GapRow, 0, len(fields))
	for _, f := range fields {
		va, okA := ma[f]
		vb, okB := mb[f]
		if !okA || !okB {
			continue
		}
		row := GapRow{
			Field:        f,
			Alias:        survey.Alias(f),
			MeanA:        va,
			MeanB:        vb,
			Gap:          vb - va,
			DominantSide: groupA,
		}
		if row.Gap > 0 {
			row.DominantSide = groupB
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		gi, gj := math.Abs(rows[i].Gap), math.Abs(rows[j].Gap)
		if gi != gj {
			return gi > gj
		}
		return rows[i].Field < rows[j].Field
	})
	return rows, nil
}

// OutcomeRate computes the mean overweight rate per group over raw records.
func OutcomeRate(records []survey.Record, key GroupKey) (map[string]float64, error) {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, r := range records {
		g, err := groupValue(key, r.Country, r.Year, r.Sex, r.Age)
		if err != nil {
			return nil, err
		}
		sums[g] += r.Overweight
		counts[g]++
	}
	out := make(map[string]float64, len(sums))
	for g, sum := range sums {
		out[g] = float64(sum) / float64(counts[g])
	}
	return out, nil
}

// OutcomeTrend computes the overweight rate per year per group, the shape
// the trend charts consume.
func OutcomeTrend(records []survey.Record, key GroupKey) (map[int]map[string]float64, error) {
	byYear := map[int][]survey.Record{}
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	out := make(map[int]map[string]float64, len(byYear))
	for year, recs := range byYear {
		rates, err := OutcomeRate(recs, key)
		if err != nil {
			return nil, err
		}
		out[year] = rates
	}
	return out, nil
}

// Rate is the overall overweight rate. ok=false on an empty slice.
func Rate(records []survey.Record) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range records {
		sum += r.Overweight
	}
	return float64(sum) / float64(len(records)), true
}

// MaxRate picks the group with the highest rate; ties go to the
// lexicographically smallest group so the answer is stable.
func MaxRate(rates map[string]float64) (string, float64, bool) {
	best := ""
	bestRate := math.Inf(-1)
	for g, r := range rates {
		if r > bestRate || (r == bestRate && g < best) {
			best, bestRate = g, r
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, bestRate, true
}
