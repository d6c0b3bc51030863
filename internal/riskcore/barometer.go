package riskcore

import (
	"fmt"
	"math"

	"github.com/hbsc-labs/insight/internal/survey"
)

// Question is one barometer question: an answer key and its own scale, which
// may differ from the survey column of the same name (the form presents
// every frequency question on a 1–7 scale).
type Question struct {
	Key   string       `yaml:"key" json:"key"`
	Scale survey.Scale `yaml:"scale" json:"scale"`
}

// DefaultQuestions is the barometer question set from the assessment form.
// Answer labels are already ordered risk-ascending, so none are reversed.
func DefaultQuestions() []Question {
	return []Question{
		{Key: "SOFT_DRINKS", Scale: survey.Scale{Max: 7}},
		{Key: "SWEETS", Scale: survey.Scale{Max: 7}},
		{Key: "VEGETABLES", Scale: survey.Scale{Max: 7}},
		{Key: "FRIEND_TALK", Scale: survey.Scale{Max: 7}},
		{Key: "PHYS_ACT_60", Scale: survey.Scale{Max: 7}},
		{Key: "BREAKFAST_WEEKDAYS", Scale: survey.Scale{Max: 7}},
		{Key: "TOOTH_BRUSHING", Scale: survey.Scale{Max: 5}},
		{Key: "FEEL_LOW", Scale: survey.Scale{Max: 7}},
		{Key: "TALK_FATHER", Scale: survey.Scale{Max: 7}},
	}
}

// Barometer turns one profile's raw answers into a bounded 0–100 lifestyle
// risk score.
type Barometer struct {
	questions []Question
}

// NewBarometer validates the question set: every scale needs at least two
// steps for the per-answer rescaling to be defined.
func NewBarometer(questions []Question) (*Barometer, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions configured", ErrMissingScaleDescriptor)
	}
	for _, q := range questions {
		if q.Scale.Max < 2 {
			return nil, fmt.Errorf("%w: %s", ErrMissingScaleDescriptor, q.Key)
		}
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Barometer{questions: qs}, nil
}

// Questions returns the configured question set, for form rendering.
func (b *Barometer) Questions() []Question {
	qs := make([]Question, len(b.questions))
	copy(qs, b.questions)
	return qs
}

// ScoreResult is the composite lifestyle risk: an integer score 0–100, the
// underlying 0–1 ratio for gauges, and the coarse band the coach prompt uses.
type ScoreResult struct {
	Score int     `json:"score"`
	Ratio float64 `json:"ratio"`
	Band  string  `json:"band"`
}

// Score averages the per-question risk of one profile. Each answer v on a
// 1..max scale contributes (v-1)/(max-1), inverted when the scale is
// reversed, so all-healthiest answers score 0 and all-riskiest score 100.
// Every configured question must be answered; a missing key refuses the
// whole score rather than assuming a middle answer.
func (b *Barometer) Score(answers map[string]int) (ScoreResult, error) {
	var sum float64
	for _, q := range b.questions {
		v, ok := answers[q.Key]
		if !ok {
			return ScoreResult{}, fmt.Errorf("%w: missing %s", ErrIncompleteProfile, q.Key)
		}
		if v < 1 || v > q.Scale.Max {
			return ScoreResult{}, fmt.Errorf("%w: %s=%d (scale 1-%d)", ErrInvalidAnswer, q.Key, v, q.Scale.Max)
		}
		r := float64(v-1) / float64(q.Scale.Max-1)
		if q.Scale.Reversed {
			r = 1 - r
		}
		sum += r
	}
	ratio := sum / float64(len(b.questions))
	score := int(math.Round(ratio * 100))
	return ScoreResult{Score: score, Ratio: ratio, Band: Band(score)}, nil
}

// Band maps a 0–100 score onto the coarse risk bands used downstream.
func Band(score int) string {
	switch {
	case score < 30:
		return "low"
	case score < 60:
		return "medium"
	default:
		return "high"
	}
}
