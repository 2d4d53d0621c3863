package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"station-metrics-service/internal/adapters/uploads"
	"station-metrics-service/internal/api/dto"
	"station-metrics-service/internal/domain"
	"station-metrics-service/internal/ports"
	"strings"
)

// Uploads are daily outcome sheets; a workbook covering a month is
// well under this.
const maxUploadBytes = 16 << 20

// UploadHandler ingests spreadsheet uploads of daily outcomes. Each
// date in the workbook becomes a whole-record save, replacing any
// record already stored for that date.
type UploadHandler struct {
	Repo  ports.RecordRepository
	Cache ports.ReportCache
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read upload")
		return
	}

	var records []domain.DailyRecord
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		records, err = uploads.ParseXLSX(bytes.NewReader(data))
	case ".xls":
		records, err = uploads.ParseXLS(bytes.NewReader(data))
	default:
		writeError(w, r, http.StatusBadRequest, "file must be .xlsx or .xls")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(records) == 0 {
		writeError(w, r, http.StatusBadRequest, "workbook contains no data rows")
		return
	}

	res := dto.UploadResponse{Dates: make([]string, 0, len(records))}
	for _, rec := range records {
		if err := h.Repo.Save(r.Context(), rec); err != nil {
			log.Printf("save uploaded record failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.RecordsSaved++
		res.Dates = append(res.Dates, rec.Date.Format(dateFormat))
	}

	invalidateReports(r.Context(), h.Cache)
	writeJSON(w, r, http.StatusOK, res)
}
