package domain

// Smallest pivot time unit: a day of month in monthly mode, a month in
// yearly mode. Cells hold raw sums; rates live on block summaries.
type PivotCell struct {
	Total     int
	Delivered int
}

// Subtotal over a block of consecutive slots (a 10-day period or a
// quarter). Rate is a fraction in [0,1], computed sum-then-divide.
type BlockSummary struct {
	Total     int
	Delivered int
	Rate      float64
}

// Fixed group of consecutive slots. End is exclusive.
type BlockSpec struct {
	Label string
	Start int
	End   int
}

// One worker's row: a cell per slot, a summary per block, and an
// overall summary across all blocks.
type PivotRow struct {
	Name    string
	Cells   []PivotCell
	Blocks  []BlockSummary
	Overall BlockSummary
}

// Matrix retaining the time dimension as slot columns alongside worker
// rows. Rows are sorted by canonical name; the station-wide grand total
// is returned as a separate row so renderers can always place it last.
// Skipped counts worker-day observations whose slot index fell outside
// the layout, kept for diagnostics.
type Pivot struct {
	Mode       PivotMode
	SlotLabels []string
	Blocks     []BlockSpec
	Rows       []PivotRow
	GrandTotal PivotRow
	Skipped    int
}

// Row returns the row for a canonical name, or nil.
func (p *Pivot) Row(name string) *PivotRow {
	for i := range p.Rows {
		if p.Rows[i].Name == name {
			return &p.Rows[i]
		}
	}
	return nil
}
