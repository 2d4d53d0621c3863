package services

import (
	"station-metrics-service/internal/domain"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(date time.Time, workers ...domain.WorkerDayEntry) domain.DailyRecord {
	rec := domain.DailyRecord{Date: date, Workers: workers}
	rec.StationTotal = rec.RecomputedTotal()
	return rec
}

func entry(name string, total, delivered int) domain.WorkerDayEntry {
	return domain.WorkerDayEntry{Name: name, Total: total, Delivered: delivered}
}

func TestRollupMatchesNaiveSums(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 3, 1), entry("ana", 10, 9), entry("ben", 5, 4)),
		record(day(2026, 3, 2), entry("ana", 20, 18)),
		record(day(2026, 3, 3), entry("ben", 8, 8), entry("cal", 3, 1)),
	}

	got := Rollup(records, day(2026, 3, 1), day(2026, 3, 3), nil)

	// Cross-check against direct iteration.
	naiveTotal := map[string]int{}
	naiveDelivered := map[string]int{}
	for _, rec := range records {
		for _, w := range rec.Workers {
			naiveTotal[w.Name] += w.Total
			naiveDelivered[w.Name] += w.Delivered
		}
	}

	if len(got.PerWorker) != 3 {
		t.Fatalf("expected 3 workers, got %d", len(got.PerWorker))
	}
	for _, a := range got.PerWorker {
		if a.Total != naiveTotal[a.Name] || a.Delivered != naiveDelivered[a.Name] {
			t.Errorf("%s: got %d/%d, want %d/%d", a.Name, a.Delivered, a.Total, naiveDelivered[a.Name], naiveTotal[a.Name])
		}
	}

	if got.Station.Total != 46 || got.Station.Delivered != 40 {
		t.Fatalf("station tally = %+v, want 40/46", got.Station)
	}
	if got.Days != 3 {
		t.Fatalf("Days = %d, want 3", got.Days)
	}
}

func TestRollupWindowIsInclusive(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 3, 1), entry("ana", 1, 1)),
		record(day(2026, 3, 2), entry("ana", 2, 2)),
		record(day(2026, 3, 3), entry("ana", 4, 4)),
	}

	got := Rollup(records, day(2026, 3, 1), day(2026, 3, 2), nil)
	if len(got.PerWorker) != 1 || got.PerWorker[0].Total != 3 {
		t.Fatalf("inclusive window total = %+v, want 3", got.PerWorker)
	}

	empty := Rollup(records, day(2026, 4, 1), day(2026, 4, 30), nil)
	if len(empty.PerWorker) != 0 {
		t.Fatalf("empty window returned workers: %+v", empty.PerWorker)
	}
	if empty.Station.Total != 0 || empty.Station.Delivered != 0 {
		t.Fatalf("empty window station tally = %+v, want zero", empty.Station)
	}
}

func TestRollupMergesAliasedHistory(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 3, 1), entry("Jon", 10, 9)),
		record(day(2026, 3, 2), entry("John", 10, 10)),
	}

	aliases, err := Rename("Jon", "John", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := Rollup(records, day(2026, 3, 1), day(2026, 3, 2), aliases)
	if len(got.PerWorker) != 1 {
		t.Fatalf("expected a single merged worker, got %+v", got.PerWorker)
	}

	a := got.PerWorker[0]
	if a.Name != "john" {
		t.Fatalf("merged name = %q, want %q", a.Name, "john")
	}
	if a.DaysWorked != 2 {
		t.Fatalf("DaysWorked = %d, want 2", a.DaysWorked)
	}
	if a.Total != 20 || a.Delivered != 19 {
		t.Fatalf("merged totals = %d/%d, want 19/20", a.Delivered, a.Total)
	}
}

func TestRollupRateComesFromSummedTotals(t *testing.T) {
	// 1/10 on a slow day and 90/90 on a busy one. Averaging daily rates
	// would report 50%; summing first gives 91%.
	records := []domain.DailyRecord{
		record(day(2026, 3, 1), entry("ana", 10, 1)),
		record(day(2026, 3, 2), entry("ana", 90, 90)),
	}

	got := Rollup(records, day(2026, 3, 1), day(2026, 3, 2), nil)
	if len(got.PerWorker) != 1 {
		t.Fatalf("expected 1 worker, got %d", len(got.PerWorker))
	}
	if got.PerWorker[0].SuccessRate != 91 {
		t.Fatalf("SuccessRate = %v, want 91", got.PerWorker[0].SuccessRate)
	}
	if got.PerWorker[0].Failed != 9 {
		t.Fatalf("Failed = %d, want 9", got.PerWorker[0].Failed)
	}
}

func TestRollupIgnoresStoredStationTotal(t *testing.T) {
	rec := record(day(2026, 3, 1), entry("ana", 10, 8))
	rec.StationTotal = domain.Tally{Total: 999, Delivered: 999}

	got := Rollup([]domain.DailyRecord{rec}, day(2026, 3, 1), day(2026, 3, 1), nil)
	if got.Station.Total != 10 || got.Station.Delivered != 8 {
		t.Fatalf("station tally = %+v, want recomputed 8/10", got.Station)
	}
}

func TestRollupSurfacesInconsistentRates(t *testing.T) {
	// delivered > total is upstream corruption; the rate goes over 100
	// instead of being clamped or hidden.
	records := []domain.DailyRecord{
		record(day(2026, 3, 1), entry("ana", 10, 12)),
	}

	got := Rollup(records, day(2026, 3, 1), day(2026, 3, 1), nil)
	if got.PerWorker[0].SuccessRate != 120 {
		t.Fatalf("SuccessRate = %v, want unclamped 120", got.PerWorker[0].SuccessRate)
	}
}
