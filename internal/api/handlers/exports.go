package handlers

import (
	"fmt"
	"log"
	"net/http"
	"station-metrics-service/internal/adapters/export"
	"station-metrics-service/internal/platform/obs"
	"station-metrics-service/internal/ports"
	"station-metrics-service/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams engine output as downloadable xlsx workbooks.
type ExportHandler struct {
	Repo    ports.RecordRepository
	Aliases ports.AliasStore
}

func (h *ExportHandler) Rollup(w http.ResponseWriter, r *http.Request) {
	var err error
	defer obs.Time(r.Context(), "export rollup")(&err)

	start, end, rangeErr := dateRange(r)
	if rangeErr != nil {
		writeError(w, r, http.StatusBadRequest, rangeErr.Error())
		return
	}

	records, listErr := h.Repo.ListAll(r.Context())
	if listErr != nil {
		err = listErr
		log.Printf("load records failed: %v", listErr)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	aliases, aliasErr := h.Aliases.Load(r.Context())
	if aliasErr != nil {
		err = aliasErr
		log.Printf("load aliases failed: %v", aliasErr)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	summary := services.Rollup(records, start, end, aliases)

	payload, exportErr := export.WriteRollup(summary)
	if exportErr != nil {
		err = exportErr
		log.Printf("export rollup failed: %v", exportErr)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	serveWorkbook(w, payload, fmt.Sprintf("rollup-%s-%s.xlsx", start.Format(dateFormat), end.Format(dateFormat)))
}

func (h *ExportHandler) Pivot(w http.ResponseWriter, r *http.Request) {
	var err error
	defer obs.Time(r.Context(), "export pivot")(&err)

	start, end, rangeErr := dateRange(r)
	if rangeErr != nil {
		writeError(w, r, http.StatusBadRequest, rangeErr.Error())
		return
	}

	records, listErr := h.Repo.ListRange(r.Context(), start, end)
	if listErr != nil {
		err = listErr
		log.Printf("load records failed: %v", listErr)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	aliases, aliasErr := h.Aliases.Load(r.Context())
	if aliasErr != nil {
		err = aliasErr
		log.Printf("load aliases failed: %v", aliasErr)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	pivot := services.BuildPivot(records, aliases)

	payload, exportErr := export.WritePivot(pivot)
	if exportErr != nil {
		err = exportErr
		log.Printf("export pivot failed: %v", exportErr)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	serveWorkbook(w, payload, fmt.Sprintf("pivot-%s.xlsx", string(pivot.Mode)))
}

func serveWorkbook(w http.ResponseWriter, payload []byte, filename string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Printf("write workbook failed: %v", err)
	}
}
