package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"station-metrics-service/internal/adapters/repositories"
	"station-metrics-service/internal/config"
	"station-metrics-service/internal/platform/db"
	"station-metrics-service/internal/ports"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool initializes the schema and seeds daily records from a JSON
// file, against Postgres when DATABASE_URL is set and SQLite otherwise.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var (
		conn *sql.DB
		repo ports.RecordRepository
	)

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		conn = pg

		log.Println("Initializing postgres schema...")
		if err := repositories.InitSchemaPostgres(conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		repo = repositories.NewPostgresRecordRepository(conn)
	} else {
		dbPath := config.Get("DB_PATH", "data/station.db")
		lite, err := sql.Open("sqlite", dbPath)
		if err != nil {
			log.Fatal(err)
		}
		conn = lite

		log.Println("Initializing sqlite schema...")
		if err := repositories.InitSchema(conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		repo = repositories.NewSqliteRecordRepository(conn)
	}
	defer conn.Close()
	log.Println("Schema ready.")

	seedPath := config.Get("SEED_PATH", "data/seeds/records.json")
	log.Println("Seeding daily records...")
	if err := repositories.SeedFromJSON(context.Background(), repo, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
