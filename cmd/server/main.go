package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"station-metrics-service/internal/adapters/cache"
	"station-metrics-service/internal/adapters/repositories"
	"station-metrics-service/internal/api"
	"station-metrics-service/internal/config"
	"station-metrics-service/internal/platform/db"
	"station-metrics-service/internal/ports"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres storage, optional
// redis report cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedPath := os.Getenv("SEED_PATH")

	var (
		repo       ports.RecordRepository
		aliasStore ports.AliasStore
	)

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := repositories.InitSchemaPostgres(pg); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewPostgresRecordRepository(pg)
		aliasStore = repositories.NewPostgresAliasStore(pg)
	} else {
		dbPath := config.Get("DB_PATH", "data/station.db")
		lite, err := openSqlite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer lite.Close()

		if err := repositories.InitSchema(lite); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewSqliteRecordRepository(lite)
		aliasStore = repositories.NewSqliteAliasStore(lite)
	}

	// Seeding is for local runs; production data arrives via uploads.
	if seedPath != "" {
		if err := repositories.SeedFromJSON(context.Background(), repo, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	// The report cache is optional: without REDIS_ADDR every report
	// request recomputes from storage, which is correct, just slower.
	var reportCache ports.ReportCache
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		reportCache = cache.NewRedisReportCache(client)
	}

	router := api.NewRouter(repo, aliasStore, reportCache)

	// Write timeout covers xlsx export generation over a full history.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSqlite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openSqlite: open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("openSqlite: verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}
