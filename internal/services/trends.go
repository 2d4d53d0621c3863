package services

import (
	"math"
	"sort"
	"station-metrics-service/internal/domain"
	"time"
)

// Single-day extreme used by trend summaries. Tallies are recomputed
// from worker entries, consistent with the rollup path.
type DayHighlight struct {
	Date        time.Time
	Total       int
	Delivered   int
	SuccessRate float64
}

// Calendar-level view over a set of daily records.
type TrendSummary struct {
	BestDay        DayHighlight
	WorstDay       DayHighlight
	BusiestDay     DayHighlight
	BestWeekday    string
	BestWeekdayAvg float64
	AvgDailyVolume int
}

// AnalyzeTrends computes day-of-week averages and single-day extremes.
//
// Ties on the extreme values resolve to the earliest date, a fixed rule
// chosen so results never depend on input ordering. Weekdays with no
// records are excluded from the best-weekday comparison rather than
// treated as zero-mean. An empty record set yields the zero summary.
func AnalyzeTrends(records []domain.DailyRecord) TrendSummary {
	if len(records) == 0 {
		return TrendSummary{}
	}

	highlights := make([]DayHighlight, 0, len(records))
	for _, rec := range records {
		t := rec.RecomputedTotal()
		highlights = append(highlights, DayHighlight{
			Date:        dateOnly(rec.Date),
			Total:       t.Total,
			Delivered:   t.Delivered,
			SuccessRate: t.SuccessRate(),
		})
	}
	sort.Slice(highlights, func(i, j int) bool {
		return highlights[i].Date.Before(highlights[j].Date)
	})

	summary := TrendSummary{
		BestDay:    highlights[0],
		WorstDay:   highlights[0],
		BusiestDay: highlights[0],
	}

	volumeSum := 0
	weekdaySums := make(map[time.Weekday]int)
	weekdayCounts := make(map[time.Weekday]int)

	for _, h := range highlights {
		if h.SuccessRate > summary.BestDay.SuccessRate {
			summary.BestDay = h
		}
		if h.SuccessRate < summary.WorstDay.SuccessRate {
			summary.WorstDay = h
		}
		if h.Total > summary.BusiestDay.Total {
			summary.BusiestDay = h
		}

		volumeSum += h.Total
		wd := h.Date.Weekday()
		weekdaySums[wd] += h.Total
		weekdayCounts[wd]++
	}

	summary.AvgDailyVolume = int(math.Round(float64(volumeSum) / float64(len(highlights))))

	// Iterate weekdays in calendar order so equal means pick the same
	// winner every run.
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		count := weekdayCounts[wd]
		if count == 0 {
			continue
		}
		mean := float64(weekdaySums[wd]) / float64(count)
		if summary.BestWeekday == "" || mean > summary.BestWeekdayAvg {
			summary.BestWeekday = wd.String()
			summary.BestWeekdayAvg = mean
		}
	}

	return summary
}
