package services

import (
	"station-metrics-service/internal/domain"
	"testing"
)

func TestModeForSpanBoundary(t *testing.T) {
	// Exactly 35 days apart stays monthly; 36 flips to yearly.
	monthly := []domain.DailyRecord{
		record(day(2026, 1, 1), entry("ana", 1, 1)),
		record(day(2026, 2, 5), entry("ana", 1, 1)),
	}
	if got := ModeForSpan(monthly); got != domain.PivotMonthly {
		t.Fatalf("35-day span mode = %v, want monthly", got)
	}

	yearly := []domain.DailyRecord{
		record(day(2026, 1, 1), entry("ana", 1, 1)),
		record(day(2026, 2, 6), entry("ana", 1, 1)),
	}
	if got := ModeForSpan(yearly); got != domain.PivotYearly {
		t.Fatalf("36-day span mode = %v, want yearly", got)
	}

	if got := ModeForSpan(nil); got != domain.PivotMonthly {
		t.Fatalf("empty set mode = %v, want monthly", got)
	}
}

func TestBuildPivotMonthlyLayout(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 3, 1), entry("ana", 10, 9), entry("ben", 4, 4)),
		record(day(2026, 3, 10), entry("ana", 6, 6)),
		record(day(2026, 3, 11), entry("ana", 8, 4)),
		record(day(2026, 3, 31), entry("ben", 5, 5)),
	}

	pivot := BuildPivot(records, nil)
	if pivot.Mode != domain.PivotMonthly {
		t.Fatalf("mode = %v, want monthly", pivot.Mode)
	}
	if len(pivot.Blocks) != 3 || pivot.Blocks[2].End != 31 {
		t.Fatalf("unexpected monthly block layout: %+v", pivot.Blocks)
	}

	ana := pivot.Row("ana")
	if ana == nil {
		t.Fatal("missing row for ana")
	}
	if ana.Cells[0].Total != 10 || ana.Cells[9].Total != 6 || ana.Cells[10].Total != 8 {
		t.Fatalf("ana slot totals wrong: %+v", ana.Cells)
	}

	// Day 1 and day 10 land in the first block, day 11 in the second.
	if ana.Blocks[0].Total != 16 || ana.Blocks[1].Total != 8 || ana.Blocks[2].Total != 0 {
		t.Fatalf("ana block totals = %+v", ana.Blocks)
	}
	if ana.Overall.Total != 24 || ana.Overall.Delivered != 19 {
		t.Fatalf("ana overall = %+v", ana.Overall)
	}

	// Rows are alphabetical; grand total is carried separately.
	if pivot.Rows[0].Name != "ana" || pivot.Rows[1].Name != "ben" {
		t.Fatalf("row order = %q, %q", pivot.Rows[0].Name, pivot.Rows[1].Name)
	}
	if pivot.GrandTotal.Name != GrandTotalName {
		t.Fatalf("grand row name = %q", pivot.GrandTotal.Name)
	}
	if pivot.GrandTotal.Overall.Total != 33 || pivot.GrandTotal.Overall.Delivered != 28 {
		t.Fatalf("grand overall = %+v", pivot.GrandTotal.Overall)
	}
}

func TestBuildPivotBlockTotalsEqualSlotSums(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 1, 3), entry("ana", 7, 6), entry("ben", 2, 2)),
		record(day(2026, 4, 18), entry("ana", 11, 9)),
		record(day(2026, 9, 30), entry("ben", 13, 13)),
		record(day(2026, 12, 25), entry("ana", 5, 3), entry("ben", 1, 0)),
	}

	pivot := BuildPivot(records, nil)
	if pivot.Mode != domain.PivotYearly {
		t.Fatalf("mode = %v, want yearly", pivot.Mode)
	}

	rows := append([]domain.PivotRow{}, pivot.Rows...)
	rows = append(rows, pivot.GrandTotal)

	for _, row := range rows {
		overall := 0
		for bi, b := range pivot.Blocks {
			sumTotal, sumDelivered := 0, 0
			for i := b.Start; i < b.End; i++ {
				sumTotal += row.Cells[i].Total
				sumDelivered += row.Cells[i].Delivered
			}
			if row.Blocks[bi].Total != sumTotal || row.Blocks[bi].Delivered != sumDelivered {
				t.Errorf("%s block %s = %+v, want %d/%d", row.Name, b.Label, row.Blocks[bi], sumDelivered, sumTotal)
			}
			overall += sumTotal
		}
		if row.Overall.Total != overall {
			t.Errorf("%s overall total = %d, want %d", row.Name, row.Overall.Total, overall)
		}
	}
}

func TestBuildPivotRatesAreFractions(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 3, 2), entry("ana", 10, 5)),
	}

	pivot := BuildPivot(records, nil)
	ana := pivot.Row("ana")
	if ana.Blocks[0].Rate != 0.5 {
		t.Fatalf("block rate = %v, want fraction 0.5", ana.Blocks[0].Rate)
	}
	if ana.Blocks[1].Rate != 0 {
		t.Fatalf("empty block rate = %v, want 0", ana.Blocks[1].Rate)
	}
}

func TestBuildPivotRoundTripsRollupTotals(t *testing.T) {
	records := []domain.DailyRecord{
		record(day(2026, 3, 1), entry("Jon", 10, 9)),
		record(day(2026, 3, 15), entry("John", 7, 7)),
		record(day(2026, 3, 28), entry("John", 4, 2)),
	}

	aliases, err := Rename("Jon", "John", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pivot := BuildPivot(records, aliases)
	rollup := Rollup(records, day(2026, 3, 1), day(2026, 3, 31), aliases)

	row := pivot.Row("john")
	if row == nil {
		t.Fatal("missing merged pivot row for john")
	}

	slotSum := 0
	for _, c := range row.Cells {
		slotSum += c.Total
	}
	if slotSum != rollup.PerWorker[0].Total {
		t.Fatalf("pivot slot sum = %d, rollup total = %d", slotSum, rollup.PerWorker[0].Total)
	}
}
