package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"station-metrics-service/internal/domain"
	"station-metrics-service/internal/ports"
	"strings"
	"time"
)

type workerSeed struct {
	Name      string         `json:"name"`
	Total     int            `json:"total"`
	Delivered int            `json:"delivered"`
	Shipments []shipmentSeed `json:"shipments,omitempty"`
}

type shipmentSeed struct {
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
}

type recordSeed struct {
	Date    string       `json:"date"`
	Workers []workerSeed `json:"workers"`
}

// Populate the repository with daily records from a JSON seed file.
func SeedFromJSON(ctx context.Context, repo ports.RecordRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed records: read %q: %w", jsonPath, err)
	}

	var data []recordSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed records: parse json: %w", err)
	}

	for i, item := range data {
		date, err := time.Parse(dayFormat, strings.TrimSpace(item.Date))
		if err != nil {
			return fmt.Errorf("seed records: invalid date at index %d: %w", i+1, err)
		}

		rec := domain.DailyRecord{Date: date}
		for j, w := range item.Workers {
			name := strings.TrimSpace(w.Name)
			if name == "" {
				return fmt.Errorf("seed records: date %s worker at index %d: name cannot be empty", item.Date, j+1)
			}

			entry := domain.WorkerDayEntry{Name: name, Total: w.Total, Delivered: w.Delivered}
			for _, sh := range w.Shipments {
				entry.Shipments = append(entry.Shipments, domain.ShipmentRecord{
					TrackingID: sh.TrackingID,
					Status:     domain.ShipmentStatus(sh.Status),
					Note:       sh.Note,
				})
			}
			rec.Workers = append(rec.Workers, entry)
		}
		rec.StationTotal = rec.RecomputedTotal()

		if err := repo.Save(ctx, rec); err != nil {
			return fmt.Errorf("seed records: save date %s: %w", item.Date, err)
		}
	}

	return nil
}
