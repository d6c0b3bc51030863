package api

import (
	"net/http"

	"github.com/hbsc-labs/insight/internal/store"
)

type AdminHandler struct {
	store store.Store
}

func NewAdminHandler(s store.Store) *AdminHandler {
	return &AdminHandler{store: s}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.DatasetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type DimensionsResponse struct {
	Years     []int    `json:"years"`
	Countries []string `json:"countries"`
}

func (h *AdminHandler) Dimensions(w http.ResponseWriter, r *http.Request) {
	years, err := h.store.Years(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	countries, err := h.store.Countries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DimensionsResponse{Years: years, Countries: countries})
}
