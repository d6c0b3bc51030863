package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hbsc-labs/insight/internal/classifier"
	"github.com/hbsc-labs/insight/internal/coach"
	"github.com/hbsc-labs/insight/internal/events"
	"github.com/hbsc-labs/insight/internal/riskcore"
	"github.com/hbsc-labs/insight/internal/survey"
)

// BarometerHandler scores individual profiles and, for full assessments,
// consults the classifier and coach collaborators.
type BarometerHandler struct {
	barometer  *riskcore.Barometer
	classifier classifier.Client
	coach      coach.Client
	events     events.Client
	logger     *slog.Logger
}

func NewBarometerHandler(b *riskcore.Barometer, cls classifier.Client, co coach.Client, ev events.Client, logger *slog.Logger) *BarometerHandler {
	return &BarometerHandler{barometer: b, classifier: cls, coach: co, events: ev, logger: logger}
}

type ScoreRequest struct {
	Answers map[string]int `json:"answers"`
}

func (h *BarometerHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.barometer.Score(req.Answers)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, riskcore.ErrIncompleteProfile) || errors.Is(err, riskcore.ErrInvalidAnswer) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type AssessRequest struct {
	Sex     int            `json:"sex"`
	Age     int            `json:"age"`
	Country string         `json:"country,omitempty"`
	Answers map[string]int `json:"answers"`
}

type AssessResponse struct {
	AssessmentID   string                 `json:"assessment_id"`
	Score          int                    `json:"score"`
	Ratio          float64                `json:"ratio"`
	Band           string                 `json:"band"`
	Prediction     *classifier.Prediction `json:"prediction,omitempty"`
	Recommendation string                 `json:"recommendation,omitempty"`
}

func (h *BarometerHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sex := survey.Sex(req.Sex)
	if sex != survey.SexBoys && sex != survey.SexGirls {
		writeError(w, http.StatusBadRequest, "sex must be 1 or 2")
		return
	}

	result, err := h.barometer.Score(req.Answers)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, riskcore.ErrIncompleteProfile) || errors.Is(err, riskcore.ErrInvalidAnswer) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	resp := AssessResponse{
		AssessmentID: uuid.NewString(),
		Score:        result.Score,
		Ratio:        result.Ratio,
		Band:         result.Band,
	}

	if h.classifier != nil {
		if pred, err := h.predict(r, req); err != nil {
			h.logger.Warn("classifier unavailable for assessment", "error", err)
		} else {
			resp.Prediction = pred
		}
	}

	if h.coach != nil {
		summary := coach.ProfileSummary{
			SexLabel: sex.Label(),
			Age:      req.Age,
			Score:    result.Score,
			RiskBand: result.Band,
			Habits:   habitSummary(h.barometer.Questions(), req.Answers),
		}
		if text, err := h.coach.Recommend(r.Context(), summary); err != nil {
			h.logger.Warn("coach unavailable for assessment", "error", err)
		} else {
			resp.Recommendation = text
		}
	}

	if h.events != nil {
		event := events.AssessmentScoredEvent{
			AssessmentID: resp.AssessmentID,
			Score:        resp.Score,
			RiskBand:     resp.Band,
			Timestamp:    time.Now().UTC(),
		}
		if resp.Prediction != nil {
			event.Class = &resp.Prediction.Class
			event.Probability = &resp.Prediction.Probability
		}
		if err := h.events.Publish(events.SubjectAssessmentScored(resp.AssessmentID), event); err != nil {
			h.logger.Warn("failed to publish assessment event", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BarometerHandler) predict(r *http.Request, req AssessRequest) (*classifier.Prediction, error) {
	inputs := map[string]int{"SEX": req.Sex, "AGE": req.Age}
	for _, f := range classifier.ControlledFeatures {
		if f == "SEX" || f == "AGE" {
			continue
		}
		v, ok := req.Answers[f]
		if !ok {
			return nil, fmt.Errorf("answers do not cover model feature %s", f)
		}
		inputs[f] = v
	}
	vector, err := classifier.BuildVector(inputs, survey.CanonicalCountry(req.Country))
	if err != nil {
		return nil, err
	}
	return h.classifier.Predict(r.Context(), vector)
}

func habitSummary(questions []riskcore.Question, answers map[string]int) map[string]string {
	habits := make(map[string]string, len(questions))
	for _, q := range questions {
		if v, ok := answers[q.Key]; ok {
			habits[survey.Alias(q.Key)] = fmt.Sprintf("%d of %d", v, q.Scale.Max)
		}
	}
	return habits
}
