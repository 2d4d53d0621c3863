package handlers

import (
	"log"
	"net/http"
	"station-metrics-service/internal/api/dto"
	"station-metrics-service/internal/ports"
	"strings"
)

// ShipmentHandler answers tracking-id lookups across stored records. A
// query matches when it is a case-insensitive substring of the tracking
// id, so partial ids from a label scan still find the shipment.
type ShipmentHandler struct {
	Repo ports.RecordRepository
}

func (h *ShipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, r, http.StatusBadRequest, "query parameter q is required")
		return
	}

	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.Repo.ListRange(r.Context(), start, end)
	if err != nil {
		log.Printf("shipment search failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	needle := strings.ToLower(query)
	res := dto.ShipmentSearchResponse{Query: query, Matches: []dto.ShipmentMatch{}}
	for _, rec := range records {
		for _, wk := range rec.Workers {
			for _, sh := range wk.Shipments {
				if !strings.Contains(strings.ToLower(sh.TrackingID), needle) {
					continue
				}
				res.Matches = append(res.Matches, dto.ShipmentMatch{
					Date:       rec.Date.Format(dateFormat),
					Worker:     wk.Name,
					TrackingID: sh.TrackingID,
					Status:     string(sh.Status),
					Note:       sh.Note,
				})
			}
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
