package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"station-metrics-service/internal/api/dto"
	"station-metrics-service/internal/domain"
	"station-metrics-service/internal/ports"
	"time"
)

// RecordHandler exposes whole-record CRUD over daily records. Partial
// edits are not supported: PUT replaces the full document for a date.
type RecordHandler struct {
	Repo  ports.RecordRepository
	Cache ports.ReportCache
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.Repo.ListRange(r.Context(), start, end)
	if err != nil {
		log.Printf("list records failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRecordsResponse{Records: make([]dto.DailyRecordResponse, 0, len(records))}
	for _, rec := range records {
		res.Records = append(res.Records, recordResponse(rec))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}

	rec, err := h.Repo.Get(r.Context(), date)
	if errors.Is(err, ports.ErrRecordNotFound) {
		writeError(w, r, http.StatusNotFound, "no record for that date")
		return
	}
	if err != nil {
		log.Printf("get record failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, recordResponse(rec))
}

func (h *RecordHandler) Save(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}

	var req dto.SaveRecordRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	rec := domain.DailyRecord{Date: date}
	for _, wp := range req.Workers {
		if wp.Name == "" {
			writeError(w, r, http.StatusBadRequest, "worker name is required")
			return
		}
		if wp.Total < 0 || wp.Delivered < 0 {
			writeError(w, r, http.StatusBadRequest, "counts must be non-negative")
			return
		}

		entry := domain.WorkerDayEntry{Name: wp.Name, Total: wp.Total, Delivered: wp.Delivered}
		for _, sp := range wp.Shipments {
			entry.Shipments = append(entry.Shipments, domain.ShipmentRecord{
				TrackingID: sp.TrackingID,
				Status:     domain.ShipmentStatus(sp.Status),
				Note:       sp.Note,
			})
		}
		rec.Workers = append(rec.Workers, entry)
	}
	rec.StationTotal = rec.RecomputedTotal()

	if err := h.Repo.Save(r.Context(), rec); err != nil {
		log.Printf("save record failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidateReports(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusOK, recordResponse(rec))
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Delete(r.Context(), date); err != nil {
		log.Printf("delete record failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidateReports(r.Context(), h.Cache)
	w.WriteHeader(http.StatusNoContent)
}

func pathDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := time.Parse(dateFormat, r.PathValue("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// Stale cached reports after a write are worse than a slow next read.
// Invalidation failure is logged, not returned: the write itself stuck.
func invalidateReports(ctx context.Context, cache ports.ReportCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Printf("report cache invalidation failed: %v", err)
	}
}

func recordResponse(rec domain.DailyRecord) dto.DailyRecordResponse {
	station := rec.RecomputedTotal()

	res := dto.DailyRecordResponse{
		Date:        rec.Date.Format(dateFormat),
		Total:       station.Total,
		Delivered:   station.Delivered,
		SuccessRate: station.SuccessRate(),
		Workers:     make([]dto.WorkerEntryPayload, 0, len(rec.Workers)),
	}

	for _, wk := range rec.Workers {
		wp := dto.WorkerEntryPayload{
			Name:        wk.Name,
			Total:       wk.Total,
			Delivered:   wk.Delivered,
			SuccessRate: wk.Tally().SuccessRate(),
		}
		for _, sh := range wk.Shipments {
			wp.Shipments = append(wp.Shipments, dto.ShipmentPayload{
				TrackingID: sh.TrackingID,
				Status:     string(sh.Status),
				Note:       sh.Note,
			})
		}
		res.Workers = append(res.Workers, wp)
	}

	return res
}
