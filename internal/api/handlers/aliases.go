package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"station-metrics-service/internal/api/dto"
	"station-metrics-service/internal/ports"
	"station-metrics-service/internal/services"
	"sync"
)

// AliasHandler applies worker renames. Renames are load-modify-replace
// against the alias store; the mutex serializes concurrent renames so
// two of them cannot interleave into a half-merged map (last writer
// wins, partial application never happens).
type AliasHandler struct {
	Store ports.AliasStore
	Cache ports.ReportCache

	mu sync.Mutex
}

func (h *AliasHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req dto.RenameRequest

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

	if req.From == "" || req.To == "" {
		writeError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	aliases, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("load aliases failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	updated, err := services.Rename(req.From, req.To, aliases)
	if errors.Is(err, services.ErrAliasCycle) {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.Replace(r.Context(), updated); err != nil {
		log.Printf("replace aliases failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	invalidateReports(r.Context(), h.Cache)

	writeJSON(w, r, http.StatusOK, dto.RenameResponse{
		From:      services.NormalizeName(req.From),
		To:        services.NormalizeName(req.To),
		AliasSize: len(updated),
	})
}
