package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hbsc-labs/insight/internal/config"
	"github.com/hbsc-labs/insight/internal/riskcore"
	"github.com/hbsc-labs/insight/internal/store"
	"github.com/hbsc-labs/insight/internal/survey"
)

// DashboardHandler serves the KPI, trend and group-mean queries the
// dashboard pages draw from. It holds no state beyond configuration; every
// request reads the store fresh.
type DashboardHandler struct {
	store    store.Store
	scales   survey.ScaleTable
	factors  []string
	analysis config.AnalysisConfig
}

func NewDashboardHandler(s store.Store, scales survey.ScaleTable, factors []string, analysis config.AnalysisConfig) *DashboardHandler {
	return &DashboardHandler{store: s, scales: scales, factors: factors, analysis: analysis}
}

// OverviewResponse is the KPI block. Nil fields mean the metric is
// unavailable for the current data, not an error.
type OverviewResponse struct {
	Year                int      `json:"year"`
	BaseYear            *int     `json:"base_year,omitempty"`
	PrevalenceChangePct *float64 `json:"prevalence_change_pct,omitempty"`
	BoysSharePct        *float64 `json:"boys_share_pct,omitempty"`
	GirlsSharePct       *float64 `json:"girls_share_pct,omitempty"`
	HighestRiskAge      *int     `json:"highest_risk_age,omitempty"`
	HighestCountry      *string  `json:"highest_country,omitempty"`
	HighestCountryRate  *float64 `json:"highest_country_rate,omitempty"`
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(r, "year", h.analysis.DetailYear)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	records, err := h.store.ListRecords(r.Context(), store.Filter{Limit: h.analysis.MaxRows})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := OverviewResponse{Year: year}

	rateByYear, err := riskcore.OutcomeRate(records, riskcore.ByYear)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(rateByYear) > 0 {
		base := 0
		for yearKey := range rateByYear {
			y, _ := strconv.Atoi(yearKey)
			if base == 0 || y < base {
				base = y
			}
		}
		detailRate, okDetail := rateByYear[strconv.Itoa(year)]
		baseRate, okBase := rateByYear[strconv.Itoa(base)]
		if okDetail && okBase {
			change := (detailRate - baseRate) * 100
			resp.BaseYear = &base
			resp.PrevalenceChangePct = &change
		}
	}

	var detail []survey.Record
	for _, rec := range records {
		if rec.Year == year {
			detail = append(detail, rec)
		}
	}

	// Shares of boys and girls among the overweight.
	var overweight []survey.Record
	for _, rec := range detail {
		if rec.Overweight == 1 {
			overweight = append(overweight, rec)
		}
	}
	counts := map[survey.Sex]int{}
	for _, rec := range overweight {
		counts[rec.Sex]++
	}
	if counts[survey.SexBoys] > 0 && counts[survey.SexGirls] > 0 {
		total := float64(counts[survey.SexBoys] + counts[survey.SexGirls])
		boys := float64(counts[survey.SexBoys]) / total * 100
		girls := float64(counts[survey.SexGirls]) / total * 100
		resp.BoysSharePct = &boys
		resp.GirlsSharePct = &girls
	}

	if byAge, err := riskcore.OutcomeRate(detail, riskcore.ByAge); err == nil {
		if ageKey, _, ok := riskcore.MaxRate(byAge); ok {
			if age, err := strconv.Atoi(ageKey); err == nil {
				resp.HighestRiskAge = &age
			}
		}
	}
	if byCountry, err := riskcore.OutcomeRate(detail, riskcore.ByCountry); err == nil {
		if country, rate, ok := riskcore.MaxRate(byCountry); ok {
			resp.HighestCountry = &country
			resp.HighestCountryRate = &rate
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type TrendsResponse struct {
	Group  string                     `json:"group"`
	Series map[int]map[string]float64 `json:"series"`
}

func (h *DashboardHandler) Trends(w http.ResponseWriter, r *http.Request) {
	key := riskcore.GroupKey(r.URL.Query().Get("group"))
	if key == "" {
		key = riskcore.BySex
	}

	ageMin, ageMax, ok := ageRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid age range")
		return
	}
	filter := store.Filter{
		Country: r.URL.Query().Get("country"),
		AgeMin:  ageMin,
		AgeMax:  ageMax,
		Limit:   h.analysis.MaxRows,
	}
	records, err := h.store.ListRecords(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	trend, err := riskcore.OutcomeTrend(records, key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, TrendsResponse{Group: string(key), Series: trend})
}

type GroupMeansResponse struct {
	Year   int                           `json:"year"`
	Group  string                        `json:"group"`
	Fields []string                      `json:"fields"`
	Means  map[string]map[string]float64 `json:"means"`
}

func (h *DashboardHandler) GroupMeans(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(r, "year", h.analysis.DetailYear)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	key := riskcore.GroupKey(r.URL.Query().Get("by"))
	if key == "" {
		key = riskcore.BySex
	}
	fields := h.factors
	if raw := r.URL.Query().Get("fields"); raw != "" {
		fields = strings.Split(raw, ",")
	}
	for _, f := range fields {
		if _, ok := h.scales.Lookup(f); !ok {
			writeError(w, http.StatusBadRequest, "unknown factor field: "+f)
			return
		}
	}

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
		OverweightOnly: r.URL.Query().Get("overweight_only") == "true",
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
	means, err := riskcore.GroupMeans(normalized, key, fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, GroupMeansResponse{Year: year, Group: string(key), Fields: fields, Means: means})
}
