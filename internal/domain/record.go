package domain

import "time"

// Delivery outcome of a single shipment.
type ShipmentStatus string

const (
	StatusDelivered ShipmentStatus = "delivered"
	StatusFailed    ShipmentStatus = "failed"
	StatusOFD       ShipmentStatus = "ofd"
	StatusRTO       ShipmentStatus = "rto"
)

// Represents one tracked shipment handled by a worker on one day.
// Immutable once created; consumed for lookup and per-status counts only.
type ShipmentRecord struct {
	TrackingID string
	Status     ShipmentStatus
	Note       string
}

// Running total/delivered pair shared by station and worker rollups.
type Tally struct {
	Total     int
	Delivered int
}

// SuccessRate reports delivered/total as a percentage in [0,100].
// Zero volume yields 0 rather than dividing. The value is not clamped:
// inconsistent upstream data (delivered > total) surfaces as a rate
// above 100 instead of being hidden.
func (t Tally) SuccessRate() float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(t.Delivered) / float64(t.Total) * 100
}

// Fraction reports delivered/total in [0,1] (pivot cells use fractions,
// aggregate records use percentages).
func (t Tally) Fraction() float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(t.Delivered) / float64(t.Total)
}

func (t *Tally) Add(other Tally) {
	t.Total += other.Total
	t.Delivered += other.Delivered
}

// Represents one worker's results on one date.
// Name is the raw display name recorded that day and is not guaranteed
// canonical; aggregation resolves it through the alias map first.
type WorkerDayEntry struct {
	Name      string
	Total     int
	Delivered int
	Shipments []ShipmentRecord
}

func (w WorkerDayEntry) Tally() Tally {
	return Tally{Total: w.Total, Delivered: w.Delivered}
}

// Represents one calendar date's results for the whole station.
// StationTotal is the stored aggregate as uploaded; rollups never trust
// it for sub-range math and recompute from Workers instead.
type DailyRecord struct {
	Date         time.Time
	StationTotal Tally
	Workers      []WorkerDayEntry
}

// RecomputedTotal sums the worker entries, ignoring the stored station
// aggregate. Upstream data occasionally violates the "station equals sum
// of workers" invariant; derived views must not propagate that.
func (r DailyRecord) RecomputedTotal() Tally {
	var t Tally
	for _, w := range r.Workers {
		t.Add(w.Tally())
	}
	return t
}

// Per-worker totals over a window. Derived on demand, never persisted.
// SuccessRate is a percentage recomputed from the summed totals, not an
// average of daily rates.
type AggregateRecord struct {
	Name        string
	Total       int
	Delivered   int
	Failed      int
	DaysWorked  int
	SuccessRate float64
}
