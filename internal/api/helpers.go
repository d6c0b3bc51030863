package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// queryInt reads an integer query parameter, falling back to def when absent.
// ok=false means the parameter was present but not an integer.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// queryIntPtr reads an optional integer query parameter; nil when absent.
func queryIntPtr(r *http.Request, name string) (*int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// ageRange reads the age_min/age_max pair shared by the query endpoints.
func ageRange(r *http.Request) (*int, *int, bool) {
	min, ok := queryIntPtr(r, "age_min")
	if !ok {
		return nil, nil, false
	}
	max, ok := queryIntPtr(r, "age_max")
	if !ok {
		return nil, nil, false
	}
	return min, max, true
}
