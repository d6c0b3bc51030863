package riskcore

import (
	"math"
	"sort"

	"github.com/hbsc-labs/insight/internal/survey"
)

// RankedFactor is one entry of a ranking: a factor column and the absolute
// Pearson correlation of its normalized values with the outcome.
type RankedFactor struct {
	Field          string  `json:"field"`
	Alias          string  `json:"alias"`
	AbsCorrelation float64 `json:"abs_correlation"`
}

// RankResult carries the ordered top-K factors plus the factors that could
// not be ranked (empty slice or zero variance). Inconclusive entries are
// diagnostics, not faults.
type RankResult struct {
	Top          []RankedFactor `json:"top"`
	Inconclusive []string       `json:"inconclusive,omitempty"`
}

// RankFactors orders candidate factors by |corr(factor, overweight)| over
// the given slice, strongest first. Only rows with a non-missing value for
// the factor contribute to its correlation. Ties keep candidate declaration
// order, so identical inputs always produce identical output.
func RankFactors(records []Normalized, candidates []string, k int) RankResult {
	var res RankResult
	for _, field := range candidates {
		var xs, ys []float64
		for _, r := range records {
			v, ok := r.Values[field]
			if !ok {
				continue
			}
			xs = append(xs, v)
			ys = append(ys, float64(r.Overweight))
		}
		c, ok := pearson(xs, ys)
		if !ok {
			res.Inconclusive = append(res.Inconclusive, field)
			continue
		}
		res.Top = append(res.Top, RankedFactor{Field: field, AbsCorrelation: math.Abs(c)})
	}

	sort.SliceStable(res.Top, func(i, j int) bool {
		return res.Top[i].AbsCorrelation > res.Top[j].AbsCorrelation
	})
	if k >= 0 && k < len(res.Top) {
		res.Top = res.Top[:k]
	}
	for i := range res.Top {
		res.Top[i].Alias = survey.Alias(res.Top[i].Field)
	}
	return res
}

// pearson computes the Pearson correlation of two equal-length series.
// ok=false when the correlation is undefined: fewer than two points, or zero
// variance on either side.
func pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n < 2 {
		return 0, false
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	return sxy / math.Sqrt(sxx*syy), true
}
