package services

import (
	"sort"
	"station-metrics-service/internal/domain"
	"time"
)

// GrandTotalName labels the synthetic station-wide pivot row.
const GrandTotalName = "GRAND TOTAL"

// Spans of at most this many days pivot by day of month; anything
// longer pivots by month.
const monthlySpanLimitDays = 35

// ModeForSpan selects the pivot layout from the record set's date span.
// A span of exactly 35 days is still monthly; 36 flips to yearly.
func ModeForSpan(records []domain.DailyRecord) domain.PivotMode {
	if len(records) == 0 {
		return domain.PivotMonthly
	}

	first := dateOnly(records[0].Date)
	last := first
	for _, rec := range records[1:] {
		d := dateOnly(rec.Date)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	if int(last.Sub(first)/(24*time.Hour)) > monthlySpanLimitDays {
		return domain.PivotYearly
	}
	return domain.PivotMonthly
}

// BuildPivot partitions the records into the mode's fixed slot layout
// and produces per-worker, per-slot, per-block, and grand totals.
//
// Worker names are resolved through the alias map before bucketing. A
// date whose slot index falls outside the layout is skipped rather than
// raised, with the skip counted for diagnostics. Block and overall
// rates are fractions computed sum-then-divide, never averages of
// narrower rates. A zero cell means zero; the numeric model has no
// null state, and blank-vs-zero display is the renderer's concern.
func BuildPivot(records []domain.DailyRecord, aliases domain.AliasMap) domain.Pivot {
	mode := ModeForSpan(records)
	slots := mode.SlotCount()

	pivot := domain.Pivot{
		Mode:       mode,
		SlotLabels: mode.SlotLabels(),
		Blocks:     mode.BlockLayout(),
		Rows:       []domain.PivotRow{},
	}

	cells := make(map[string][]domain.PivotCell)
	grand := make([]domain.PivotCell, slots)

	for _, rec := range records {
		slot := mode.SlotIndex(rec.Date)
		if slot < 0 || slot >= slots {
			pivot.Skipped++
			continue
		}

		for _, w := range rec.Workers {
			name := Resolve(w.Name, aliases)
			row, ok := cells[name]
			if !ok {
				row = make([]domain.PivotCell, slots)
				cells[name] = row
			}
			row[slot] = addCell(row[slot], w.Tally())
			grand[slot] = addCell(grand[slot], w.Tally())
		}
	}

	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pivot.Rows = append(pivot.Rows, summarizeRow(name, cells[name], pivot.Blocks))
	}
	pivot.GrandTotal = summarizeRow(GrandTotalName, grand, pivot.Blocks)

	return pivot
}

func addCell(c domain.PivotCell, t domain.Tally) domain.PivotCell {
	c.Total += t.Total
	c.Delivered += t.Delivered
	return c
}

// Block summaries sum their slots; the overall summary sums the blocks.
// Every rate divides the matching sums, so block totals always equal
// the sum of their constituent slot totals.
func summarizeRow(name string, cells []domain.PivotCell, blocks []domain.BlockSpec) domain.PivotRow {
	row := domain.PivotRow{
		Name:   name,
		Cells:  cells,
		Blocks: make([]domain.BlockSummary, 0, len(blocks)),
	}

	var overall domain.Tally
	for _, b := range blocks {
		var t domain.Tally
		for i := b.Start; i < b.End && i < len(cells); i++ {
			t.Add(domain.Tally{Total: cells[i].Total, Delivered: cells[i].Delivered})
		}
		row.Blocks = append(row.Blocks, domain.BlockSummary{
			Total:     t.Total,
			Delivered: t.Delivered,
			Rate:      t.Fraction(),
		})
		overall.Add(t)
	}

	row.Overall = domain.BlockSummary{
		Total:     overall.Total,
		Delivered: overall.Delivered,
		Rate:      overall.Fraction(),
	}

	return row
}
