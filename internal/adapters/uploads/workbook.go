package uploads

import (
	"fmt"
	"station-metrics-service/internal/domain"
	"strconv"
	"strings"
	"time"
)

// Shared row assembly for spreadsheet uploads. Both readers flatten a
// workbook into string rows of the layout:
//
//	date, worker, total, delivered
//
// with an optional header row. Rows are grouped by date into whole
// DailyRecords, preserving worker order within each date.

var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}

func parseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, cell); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

func assembleRecords(rows [][]string) ([]domain.DailyRecord, error) {
	records := make([]domain.DailyRecord, 0, 31)
	index := make(map[string]int)

	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected 4 columns (date, worker, total, delivered), got %d", i+1, len(row))
		}

		date, err := parseDate(row[0])
		if err != nil {
			// A non-date first row is a header.
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		name := strings.TrimSpace(row[1])
		if name == "" {
			return nil, fmt.Errorf("row %d: worker name cannot be empty", i+1)
		}

		total, err := parseCount(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: total: %w", i+1, err)
		}
		delivered, err := parseCount(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: delivered: %w", i+1, err)
		}

		key := date.Format("2006-01-02")
		ri, ok := index[key]
		if !ok {
			ri = len(records)
			index[key] = ri
			records = append(records, domain.DailyRecord{Date: date})
		}

		records[ri].Workers = append(records[ri].Workers, domain.WorkerDayEntry{
			Name:      name,
			Total:     total,
			Delivered: delivered,
		})
	}

	for i := range records {
		records[i].StationTotal = records[i].RecomputedTotal()
	}

	return records, nil
}

// Counts must be integers; delivered > total is accepted here and
// surfaced later as a rate above 100 rather than rejected at ingest.
func parseCount(cell string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", strings.TrimSpace(cell))
	}
	if n < 0 {
		return 0, fmt.Errorf("count must be non-negative, got %d", n)
	}
	return n, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
