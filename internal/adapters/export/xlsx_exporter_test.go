package export

import (
	"bytes"
	"station-metrics-service/internal/domain"
	"station-metrics-service/internal/services"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestWriteRollupReadBack(t *testing.T) {
	records := []domain.DailyRecord{
		{
			Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Workers: []domain.WorkerDayEntry{
				{Name: "ana", Total: 10, Delivered: 9},
				{Name: "ben", Total: 4, Delivered: 4},
			},
		},
	}
	summary := services.Rollup(records, records[0].Date, records[0].Date, nil)

	payload, err := WriteRollup(summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(rollupSheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}

	// Header, two workers, station total.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[1][0] != "ana" || rows[1][1] != "10" {
		t.Fatalf("worker row = %v", rows[1])
	}
	if rows[3][0] != "STATION TOTAL" || rows[3][1] != "14" {
		t.Fatalf("station row = %v", rows[3])
	}
}

func TestWritePivotGrandRowIsLast(t *testing.T) {
	records := []domain.DailyRecord{
		{
			Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Workers: []domain.WorkerDayEntry{
				{Name: "ana", Total: 8, Delivered: 4},
			},
		},
	}
	pivot := services.BuildPivot(records, nil)

	payload, err := WritePivot(pivot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(pivotSheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}

	last := rows[len(rows)-1]
	if last[0] != services.GrandTotalName {
		t.Fatalf("last row = %q, want grand total", last[0])
	}

	// Pivot rates are fractions, not percentages.
	rate := last[len(last)-1]
	if rate != "0.5" {
		t.Fatalf("grand rate cell = %q, want 0.5", rate)
	}
}
