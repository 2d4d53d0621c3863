package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"station-metrics-service/internal/api/dto"
	"station-metrics-service/internal/domain"
	"station-metrics-service/internal/ports"
	"station-metrics-service/internal/services"
	"strconv"
	"time"
)

// Cached report payloads go stale only through the write-path
// invalidation; the TTL is a backstop for missed invalidations.
const reportCacheTTL = 5 * time.Minute

// ReportHandler computes derived views over the daily records. Every
// request recomputes from a fresh snapshot; the optional cache only
// short-circuits identical requests between writes.
type ReportHandler struct {
	Repo    ports.RecordRepository
	Aliases ports.AliasStore
	Cache   ports.ReportCache
}

func (h *ReportHandler) Rollup(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if h.serveCached(w, r) {
		return
	}

	records, aliases, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	summary := services.Rollup(records, start, end, aliases)

	res := dto.RollupResponse{
		Start:       start.Format(dateFormat),
		End:         end.Format(dateFormat),
		Days:        summary.Days,
		Workers:     aggregateResponses(summary.PerWorker),
		Total:       summary.Station.Total,
		Delivered:   summary.Station.Delivered,
		SuccessRate: summary.StationRate(),
	}
	h.respond(w, r, res)
}

func (h *ReportHandler) Pivot(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if h.serveCached(w, r) {
		return
	}

	records, aliases, ok := h.snapshotRange(w, r, start, end)
	if !ok {
		return
	}

	pivot := services.BuildPivot(records, aliases)

	res := dto.PivotResponse{
		Mode:       string(pivot.Mode),
		SlotLabels: pivot.SlotLabels,
		Rows:       make([]dto.PivotRowResponse, 0, len(pivot.Rows)),
		GrandTotal: pivotRowResponse(pivot.GrandTotal, pivot.Blocks),
		Skipped:    pivot.Skipped,
	}
	for _, row := range pivot.Rows {
		res.Rows = append(res.Rows, pivotRowResponse(row, pivot.Blocks))
	}
	h.respond(w, r, res)
}

func (h *ReportHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()

	policy := q.Get("policy")
	if policy == "" {
		policy = "precision"
	}
	if policy != "precision" && policy != "simple" {
		writeError(w, r, http.StatusBadRequest, "policy must be precision or simple")
		return
	}

	n := 10
	if raw := q.Get("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "n must be a positive integer")
			return
		}
	}

	floor := 5
	if raw := q.Get("floor"); raw != "" {
		floor, err = strconv.Atoi(raw)
		if err != nil || floor < 0 {
			writeError(w, r, http.StatusBadRequest, "floor must be a non-negative integer")
			return
		}
	}

	order := services.RankDescending
	if raw := q.Get("order"); raw == string(services.RankAscending) {
		order = services.RankAscending
	}

	if h.serveCached(w, r) {
		return
	}

	records, aliases, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	summary := services.Rollup(records, start, end, aliases)

	res := dto.LeaderboardResponse{Policy: policy}
	if policy == "precision" {
		res.Threshold = services.PrecisionThreshold(summary.PerWorker)
		res.Workers = aggregateResponses(services.RankPrecision(summary.PerWorker, n))
	} else {
		res.Workers = aggregateResponses(services.RankSimple(summary.PerWorker, n, floor, order))
	}
	h.respond(w, r, res)
}

func (h *ReportHandler) Trends(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if h.serveCached(w, r) {
		return
	}

	records, _, ok := h.snapshotRange(w, r, start, end)
	if !ok {
		return
	}

	trends := services.AnalyzeTrends(records)

	res := dto.TrendsResponse{
		BestDay:        trendDayResponse(trends.BestDay),
		WorstDay:       trendDayResponse(trends.WorstDay),
		BusiestDay:     trendDayResponse(trends.BusiestDay),
		BestWeekday:    trends.BestWeekday,
		BestWeekdayAvg: trends.BestWeekdayAvg,
		AvgDailyVolume: trends.AvgDailyVolume,
	}
	h.respond(w, r, res)
}

// snapshot loads the full history plus the current alias map.
func (h *ReportHandler) snapshot(w http.ResponseWriter, r *http.Request) ([]domain.DailyRecord, domain.AliasMap, bool) {
	records, err := h.Repo.ListAll(r.Context())
	if err != nil {
		log.Printf("load records failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}

	aliases, err := h.Aliases.Load(r.Context())
	if err != nil {
		log.Printf("load aliases failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}

	return records, aliases, true
}

func (h *ReportHandler) snapshotRange(w http.ResponseWriter, r *http.Request, start, end time.Time) ([]domain.DailyRecord, domain.AliasMap, bool) {
	records, err := h.Repo.ListRange(r.Context(), start, end)
	if err != nil {
		log.Printf("load records failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}

	aliases, err := h.Aliases.Load(r.Context())
	if err != nil {
		log.Printf("load aliases failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}

	return records, aliases, true
}

// serveCached writes a cached payload if one exists for this request.
// Cache errors degrade to a miss.
func (h *ReportHandler) serveCached(w http.ResponseWriter, r *http.Request) bool {
	if h.Cache == nil {
		return false
	}

	payload, ok, err := h.Cache.Get(r.Context(), r.URL.RequestURI())
	if err != nil {
		log.Printf("report cache read failed: %v", err)
		return false
	}
	if !ok {
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Printf("write cached report failed: %v", err)
	}
	return true
}

// respond writes the report and stores it for identical requests.
func (h *ReportHandler) respond(w http.ResponseWriter, r *http.Request, v any) {
	if h.Cache != nil {
		if payload, err := json.Marshal(v); err == nil {
			if err := h.Cache.Set(r.Context(), r.URL.RequestURI(), payload, reportCacheTTL); err != nil {
				log.Printf("report cache write failed: %v", err)
			}
		}
	}
	writeJSON(w, r, http.StatusOK, v)
}

func aggregateResponses(aggregates []domain.AggregateRecord) []dto.AggregateResponse {
	out := make([]dto.AggregateResponse, 0, len(aggregates))
	for _, a := range aggregates {
		out = append(out, dto.AggregateResponse{
			Name:        a.Name,
			Total:       a.Total,
			Delivered:   a.Delivered,
			Failed:      a.Failed,
			DaysWorked:  a.DaysWorked,
			SuccessRate: a.SuccessRate,
		})
	}
	return out
}

func pivotRowResponse(row domain.PivotRow, blocks []domain.BlockSpec) dto.PivotRowResponse {
	res := dto.PivotRowResponse{
		Name:  row.Name,
		Cells: make([]dto.PivotCellResponse, 0, len(row.Cells)),
		Grand: dto.BlockSummaryResponse{
			Label:     "total",
			Total:     row.Overall.Total,
			Delivered: row.Overall.Delivered,
			Rate:      row.Overall.Rate,
		},
	}
	for _, c := range row.Cells {
		res.Cells = append(res.Cells, dto.PivotCellResponse{Total: c.Total, Delivered: c.Delivered})
	}
	for i, b := range row.Blocks {
		res.Blocks = append(res.Blocks, dto.BlockSummaryResponse{
			Label:     blocks[i].Label,
			Total:     b.Total,
			Delivered: b.Delivered,
			Rate:      b.Rate,
		})
	}
	return res
}

func trendDayResponse(d services.DayHighlight) dto.TrendDayResponse {
	res := dto.TrendDayResponse{
		Total:       d.Total,
		Delivered:   d.Delivered,
		SuccessRate: d.SuccessRate,
	}
	if !d.Date.IsZero() {
		res.Date = d.Date.Format(dateFormat)
	}
	return res
}
