package domain

import (
	"strconv"
	"time"
)

// Tagged pivot layout. Each mode carries its own fixed slot/block table
// instead of branching on day-count constants at every use site.
type PivotMode string

const (
	// 31 day slots in three blocks of 10, 10, and 11 days. Block
	// boundaries sit at day 10 and day 20 regardless of actual month
	// length; slots for days a month lacks simply stay zero.
	PivotMonthly PivotMode = "monthly"

	// 12 month slots in four quarter blocks of 3.
	PivotYearly PivotMode = "yearly"
)

// SlotCount reports the number of slots in this mode's layout.
func (m PivotMode) SlotCount() int {
	if m == PivotYearly {
		return 12
	}
	return 31
}

// BlockLayout returns the fixed block table for this mode.
func (m PivotMode) BlockLayout() []BlockSpec {
	if m == PivotYearly {
		return []BlockSpec{
			{Label: "Q1", Start: 0, End: 3},
			{Label: "Q2", Start: 3, End: 6},
			{Label: "Q3", Start: 6, End: 9},
			{Label: "Q4", Start: 9, End: 12},
		}
	}
	return []BlockSpec{
		{Label: "1-10", Start: 0, End: 10},
		{Label: "11-20", Start: 10, End: 20},
		{Label: "21-31", Start: 20, End: 31},
	}
}

// SlotLabels returns display labels for every slot, in slot order.
func (m PivotMode) SlotLabels() []string {
	n := m.SlotCount()
	labels := make([]string, 0, n)
	if m == PivotYearly {
		for month := time.January; month <= time.December; month++ {
			labels = append(labels, month.String()[:3])
		}
		return labels
	}
	for day := 1; day <= n; day++ {
		labels = append(labels, strconv.Itoa(day))
	}
	return labels
}

// SlotIndex buckets a date: 0-indexed day of month in monthly mode,
// 0-indexed month in yearly mode.
func (m PivotMode) SlotIndex(date time.Time) int {
	if m == PivotYearly {
		return int(date.Month()) - 1
	}
	return date.Day() - 1
}
