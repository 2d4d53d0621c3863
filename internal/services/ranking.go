package services

import (
	"math"
	"sort"
	"station-metrics-service/internal/domain"
)

// Floor below which the precision policy never drops its volume
// threshold, so tiny stations still filter one-off couriers.
const minPrecisionVolume = 5.0

// Precision threshold factor: a worker must carry at least 20% of the
// average per-worker volume to rank.
const precisionVolumeFactor = 0.2

// Success rates within this many percentage points are considered tied
// and ordered by volume instead.
const rateTieEpsilon = 0.1

// Sort direction for the simple ranking policy.
type RankOrder string

const (
	RankDescending RankOrder = "desc"
	RankAscending  RankOrder = "asc"
)

// RankSimple is the low-stakes leaderboard policy: drop workers at or
// below the caller's volume floor, order by success rate, take the
// first n. Ascending order produces opportunity ("needs coaching")
// lists; descending produces casual toplists.
//
// It shares no threshold logic with RankPrecision: the two policies
// have different semantics and stay separate functions.
func RankSimple(aggregates []domain.AggregateRecord, n int, minVolumeFloor int, order RankOrder) []domain.AggregateRecord {
	ranked := make([]domain.AggregateRecord, 0, len(aggregates))
	for _, a := range aggregates {
		if a.Total > minVolumeFloor {
			ranked = append(ranked, a)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].SuccessRate != ranked[j].SuccessRate {
			if order == RankAscending {
				return ranked[i].SuccessRate < ranked[j].SuccessRate
			}
			return ranked[i].SuccessRate > ranked[j].SuccessRate
		}
		return ranked[i].Name < ranked[j].Name
	})

	return truncate(ranked, n)
}

// PrecisionThreshold computes the dynamic minimum volume for the
// precision policy: max(5, 20% of the average per-worker volume).
func PrecisionThreshold(aggregates []domain.AggregateRecord) float64 {
	if len(aggregates) == 0 {
		return minPrecisionVolume
	}
	sum := 0
	for _, a := range aggregates {
		sum += a.Total
	}
	avg := float64(sum) / float64(len(aggregates))
	return math.Max(minPrecisionVolume, avg*precisionVolumeFactor)
}

// RankPrecision is the "true" top-performer policy: a volume-aware
// threshold keeps low-volume outliers (one delivery, 100% rate) off the
// board. Workers within 0.1 percentage points of each other are treated
// as tied on rate and ordered by descending volume, then by name so the
// full ordering is deterministic.
func RankPrecision(aggregates []domain.AggregateRecord, n int) []domain.AggregateRecord {
	threshold := PrecisionThreshold(aggregates)

	ranked := make([]domain.AggregateRecord, 0, len(aggregates))
	for _, a := range aggregates {
		if float64(a.Total) >= threshold {
			ranked = append(ranked, a)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if math.Abs(ranked[i].SuccessRate-ranked[j].SuccessRate) > rateTieEpsilon {
			return ranked[i].SuccessRate > ranked[j].SuccessRate
		}
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})

	return truncate(ranked, n)
}

func truncate(ranked []domain.AggregateRecord, n int) []domain.AggregateRecord {
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
