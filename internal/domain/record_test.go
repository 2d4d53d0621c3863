package domain

import (
	"testing"
	"time"
)

func TestTallySuccessRate(t *testing.T) {
	if got := (Tally{Total: 0, Delivered: 0}).SuccessRate(); got != 0 {
		t.Fatalf("zero-volume rate = %v, want 0", got)
	}
	if got := (Tally{Total: 40, Delivered: 30}).SuccessRate(); got != 75 {
		t.Fatalf("rate = %v, want 75", got)
	}
	// Inconsistent upstream data is surfaced, not clamped. 10/8 is
	// exact in float64, so the comparison needs no epsilon.
	if got := (Tally{Total: 8, Delivered: 10}).SuccessRate(); got != 125 {
		t.Fatalf("rate = %v, want unclamped 125", got)
	}
}

func TestTallyFraction(t *testing.T) {
	if got := (Tally{Total: 4, Delivered: 1}).Fraction(); got != 0.25 {
		t.Fatalf("fraction = %v, want 0.25", got)
	}
	if got := (Tally{}).Fraction(); got != 0 {
		t.Fatalf("zero fraction = %v, want 0", got)
	}
}

func TestRecomputedTotalIgnoresStoredAggregate(t *testing.T) {
	rec := DailyRecord{
		Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		StationTotal: Tally{Total: 999, Delivered: 999},
		Workers: []WorkerDayEntry{
			{Name: "ana", Total: 10, Delivered: 8},
			{Name: "ben", Total: 5, Delivered: 5},
		},
	}

	got := rec.RecomputedTotal()
	if got.Total != 15 || got.Delivered != 13 {
		t.Fatalf("recomputed = %+v, want 13/15", got)
	}
}

func TestAliasMapCloneIsIndependent(t *testing.T) {
	original := AliasMap{"jon": "john"}

	clone := original.Clone()
	clone["ben"] = "benjamin"

	if _, ok := original["ben"]; ok {
		t.Fatal("clone write leaked into the original map")
	}

	var nilMap AliasMap
	if c := nilMap.Clone(); c == nil {
		t.Fatal("nil map should clone to an empty usable map")
	}
}
