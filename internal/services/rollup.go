package services

import (
	"sort"
	"station-metrics-service/internal/domain"
	"time"
)

// Range-scoped station summary: one aggregate per worker plus the
// station-wide tally recomputed from worker entries.
type RangeSummary struct {
	PerWorker []domain.AggregateRecord
	Station   domain.Tally
	Days      int
}

// StationRate reports the station-wide success rate as a percentage.
func (s RangeSummary) StationRate() float64 {
	return s.Station.SuccessRate()
}

// Rollup sums per-worker metrics over the inclusive [start, end] window.
//
// Every worker name is resolved through the alias map before grouping;
// grouping by raw name would fragment one worker's history across
// display spellings. DaysWorked increments once per worker per record.
// The station tally is recomputed from the worker entries rather than
// read from the stored StationTotal, which may be inconsistent for a
// sub-range. Success rates are computed once from the summed totals,
// not by averaging daily rates, which would bias toward low-volume
// days.
//
// An empty window yields an empty PerWorker list and a zero tally.
// Output is sorted by canonical name for determinism, though callers
// that need a ranking order re-sort explicitly.
func Rollup(records []domain.DailyRecord, start, end time.Time, aliases domain.AliasMap) RangeSummary {
	type acc struct {
		tally domain.Tally
		days  int
	}

	byWorker := make(map[string]*acc)
	summary := RangeSummary{PerWorker: []domain.AggregateRecord{}}

	for _, rec := range records {
		if !inWindow(rec.Date, start, end) {
			continue
		}
		summary.Days++

		// One record can list the same worker under two raw spellings
		// that resolve to one canonical name; daysWorked still counts
		// the record once.
		seen := make(map[string]struct{}, len(rec.Workers))

		for _, w := range rec.Workers {
			name := Resolve(w.Name, aliases)
			a, ok := byWorker[name]
			if !ok {
				a = &acc{}
				byWorker[name] = a
			}
			a.tally.Add(w.Tally())
			summary.Station.Add(w.Tally())

			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				a.days++
			}
		}
	}

	for name, a := range byWorker {
		summary.PerWorker = append(summary.PerWorker, domain.AggregateRecord{
			Name:        name,
			Total:       a.tally.Total,
			Delivered:   a.tally.Delivered,
			Failed:      a.tally.Total - a.tally.Delivered,
			DaysWorked:  a.days,
			SuccessRate: a.tally.SuccessRate(),
		})
	}

	sort.Slice(summary.PerWorker, func(i, j int) bool {
		return summary.PerWorker[i].Name < summary.PerWorker[j].Name
	})

	return summary
}

// Inclusive on both ends; only the calendar date matters.
func inWindow(date, start, end time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(start)) && !d.After(dateOnly(end))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
