package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hbsc-labs/insight/internal/config"
	"github.com/hbsc-labs/insight/internal/riskcore"
	"github.com/hbsc-labs/insight/internal/store"
	"github.com/hbsc-labs/insight/internal/survey"
)

// FactorsHandler serves the ranking and gender-gap queries.
type FactorsHandler struct {
	store    store.Store
	scales   survey.ScaleTable
	factors  []string
	analysis config.AnalysisConfig
}

func NewFactorsHandler(s store.Store, scales survey.ScaleTable, factors []string, analysis config.AnalysisConfig) *FactorsHandler {
	return &FactorsHandler{store: s, scales: scales, factors: factors, analysis: analysis}
}

type RankResponse struct {
	Year int `json:"year"`
	K    int `json:"k"`
	riskcore.RankResult
}

func (h *FactorsHandler) Rank(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(r, "year", h.analysis.DetailYear)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	k, ok := queryInt(r, "k", h.analysis.DefaultTopK)
	if !ok || k < 1 {
		writeError(w, http.StatusBadRequest, "invalid k")
		return
	}

	ageMin, ageMax, ok := ageRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid age range")
		return
	}
	filter := store.Filter{
		Year:    &year,
		Country: r.URL.Query().Get("country"),
		AgeMin:  ageMin,
		AgeMax:  ageMax,
		Limit:   h.analysis.MaxRows,
	}
	if raw := r.URL.Query().Get("sex"); raw != "" {
		sex := survey.Sex(0)
		switch raw {
		case "1":
			sex = survey.SexBoys
		case "2":
			sex = survey.SexGirls
		default:
			writeError(w, http.StatusBadRequest, "sex must be 1 or 2")
			return
		}
		filter.Sex = &sex
	}
	records, err := h.store.ListRecords(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	normalized, err := riskcore.NormalizeRecords(records, h.scales, h.factors)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := riskcore.RankFactors(normalized, h.factors, k)
	writeJSON(w, http.StatusOK, RankResponse{Year: year, K: k, RankResult: result})
}

// GapResponse reports Available=false instead of an error when the slice
// does not contain both sexes; the chart is simply unavailable for those
// filters.
type GapResponse struct {
	Year      int               `json:"year"`
	GroupA    string            `json:"group_a"`
	GroupB    string            `json:"group_b"`
	Available bool              `json:"available"`
	Rows      []riskcore.GapRow `json:"rows,omitempty"`
}

func (h *FactorsHandler) Gap(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(r, "year", h.analysis.DetailYear)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	fields := h.factors
	if raw := r.URL.Query().Get("fields"); raw != "" {
		fields = strings.Split(raw, ",")
		for _, f := range fields {
			if _, ok := h.scales.Lookup(f); !ok {
				writeError(w, http.StatusBadRequest, "unknown factor field: "+f)
				return
			}
		}
	}

	// The gender-gap charts look at overweight children unless told
	// otherwise.
	overweightOnly := r.URL.Query().Get("overweight_only") != "false"
	ageMin, ageMax, ok := ageRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid age range")
		return
	}
	filter := store.Filter{
		Year:           &year,
		Country:        r.URL.Query().Get("country"),
		AgeMin:         ageMin,
		AgeMax:         ageMax,
		OverweightOnly: overweightOnly,
		Limit:          h.analysis.MaxRows,
	}
	records, err := h.store.ListRecords(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	normalized, err := riskcore.NormalizeRecords(records, h.scales, fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	groupA, groupB := survey.SexBoys.Label(), survey.SexGirls.Label()
	resp := GapResponse{Year: year, GroupA: groupA, GroupB: groupB}

	rows, err := riskcore.GroupGap(normalized, riskcore.BySex, groupA, groupB, fields)
	switch {
	case errors.Is(err, riskcore.ErrInsufficientGroups):
		// Leave Available false.
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	default:
		resp.Available = true
		resp.Rows = rows
	}
	writeJSON(w, http.StatusOK, resp)
}
