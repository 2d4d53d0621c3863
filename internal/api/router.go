package api

import (
	"net/http"
	"station-metrics-service/internal/api/handlers"
	"station-metrics-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root: handlers depend on
// ports only and stay unaware of concrete adapters. The cache may be
// nil when no redis instance is configured.
func NewRouter(repo ports.RecordRepository, aliases ports.AliasStore, cache ports.ReportCache) http.Handler {
	mux := http.NewServeMux()

	recordHandler := &handlers.RecordHandler{Repo: repo, Cache: cache}
	reportHandler := &handlers.ReportHandler{Repo: repo, Aliases: aliases, Cache: cache}
	aliasHandler := &handlers.AliasHandler{Store: aliases, Cache: cache}
	uploadHandler := &handlers.UploadHandler{Repo: repo, Cache: cache}
	exportHandler := &handlers.ExportHandler{Repo: repo, Aliases: aliases}
	shipmentHandler := &handlers.ShipmentHandler{Repo: repo}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /records", recordHandler.List)
	mux.HandleFunc("GET /records/{date}", recordHandler.Get)
	mux.HandleFunc("PUT /records/{date}", recordHandler.Save)
	mux.HandleFunc("DELETE /records/{date}", recordHandler.Delete)

	mux.HandleFunc("POST /uploads", uploadHandler.Upload)

	mux.HandleFunc("GET /shipments", shipmentHandler.Search)

	mux.HandleFunc("GET /reports/rollup", reportHandler.Rollup)
	mux.HandleFunc("GET /reports/pivot", reportHandler.Pivot)
	mux.HandleFunc("GET /reports/leaderboard", reportHandler.Leaderboard)
	mux.HandleFunc("GET /reports/trends", reportHandler.Trends)

	mux.HandleFunc("POST /aliases/rename", aliasHandler.Rename)

	mux.HandleFunc("GET /exports/rollup.xlsx", exportHandler.Rollup)
	mux.HandleFunc("GET /exports/pivot.xlsx", exportHandler.Pivot)

	return loggingMiddleware(mux)
}
