package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const dateFormat = "2006-01-02"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// dateQuery parses a YYYY-MM-DD query parameter. An absent parameter
// returns the zero time with no error so callers can apply defaults.
func dateQuery(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return d, nil
}

// dateRange resolves the start/end query window, defaulting missing
// bounds to an effectively unbounded range.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := dateQuery(r, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dateQuery(r, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if start.IsZero() {
		start = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if end.IsZero() {
		end = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end must not be before start")
	}
	return start, end, nil
}
