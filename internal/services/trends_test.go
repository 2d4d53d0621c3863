package services

import (
	"station-metrics-service/internal/domain"
	"testing"
	"time"
)

func TestAnalyzeTrendsExtremes(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 3, 2), entry("ana", 40, 20)),  // Mon, 50%
		record(day(2026, 3, 3), entry("ana", 30, 30)),  // Tue, 100%
		record(day(2026, 3, 4), entry("ana", 100, 90)), // Wed, busiest
	}

	got := AnalyzeTrends(records)

	if !got.BestDay.Date.Equal(day(2026, 3, 3)) {
		t.Fatalf("BestDay = %v, want Mar 3", got.BestDay.Date)
	}
	if !got.WorstDay.Date.Equal(day(2026, 3, 2)) {
		t.Fatalf("WorstDay = %v, want Mar 2", got.WorstDay.Date)
	}
	if !got.BusiestDay.Date.Equal(day(2026, 3, 4)) || got.BusiestDay.Total != 100 {
		t.Fatalf("BusiestDay = %+v, want Mar 4 total=100", got.BusiestDay)
	}
	if got.BestWeekday != time.Wednesday.String() {
		t.Fatalf("BestWeekday = %q, want Wednesday", got.BestWeekday)
	}

	// round((40+30+100)/3) = round(56.67) = 57
	if got.AvgDailyVolume != 57 {
		t.Fatalf("AvgDailyVolume = %d, want 57", got.AvgDailyVolume)
	}
}

func TestAnalyzeTrendsTiesResolveToEarliestDate(t *testing.T) {
	// Both days sit at 100%; the earlier date wins regardless of input
	// order.
	records := []domain.DailyRecord{
		record(day(2026, 3, 9), entry("ana", 10, 10)),
		record(day(2026, 3, 2), entry("ana", 10, 10)),
	}

	got := AnalyzeTrends(records)
	if !got.BestDay.Date.Equal(day(2026, 3, 2)) {
		t.Fatalf("BestDay tie = %v, want earliest date", got.BestDay.Date)
	}
	if !got.BusiestDay.Date.Equal(day(2026, 3, 2)) {
		t.Fatalf("BusiestDay tie = %v, want earliest date", got.BusiestDay.Date)
	}
}

func TestAnalyzeTrendsWeekdayMeans(t *testing.T) {
	// Mondays average 55 across two occurrences; the single Friday at
	// 60 wins on mean, not on occurrence count.
	records := []domain.DailyRecord{
		record(day(2026, 3, 2), entry("ana", 50, 50)), // Mon
		record(day(2026, 3, 9), entry("ana", 60, 60)), // Mon, mean 55
		record(day(2026, 3, 6), entry("ana", 60, 60)), // Fri, mean 60
	}

	got := AnalyzeTrends(records)
	if got.BestWeekday != time.Friday.String() {
		t.Fatalf("BestWeekday = %q, want Friday", got.BestWeekday)
	}
	if got.BestWeekdayAvg != 60 {
		t.Fatalf("BestWeekdayAvg = %v, want 60", got.BestWeekdayAvg)
	}
}

func TestAnalyzeTrendsEmptyInput(t *testing.T) {
	got := AnalyzeTrends(nil)
	if got.AvgDailyVolume != 0 || got.BestWeekday != "" {
		t.Fatalf("empty input summary = %+v, want zero value", got)
	}
}

func TestAnalyzeTrendsRecomputesStationTotals(t *testing.T) {
	rec := record(day(2026, 3, 2), entry("ana", 10, 10))
	rec.StationTotal = domain.Tally{Total: 1000, Delivered: 1}

	got := AnalyzeTrends([]domain.DailyRecord{rec})
	if got.BusiestDay.Total != 10 || got.BestDay.SuccessRate != 100 {
		t.Fatalf("stored station total leaked into trends: %+v", got)
	}
}
