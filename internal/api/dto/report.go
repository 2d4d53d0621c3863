package dto

// Aggregate success rates are percentages in [0,100]; pivot block and
// grand rates are fractions in [0,1]. Renderers format accordingly, so
// the distinction is part of the contract.

type AggregateResponse struct {
	Name        string  `json:"name"`
	Total       int     `json:"total"`
	Delivered   int     `json:"delivered"`
	Failed      int     `json:"failed"`
	DaysWorked  int     `json:"days_worked"`
	SuccessRate float64 `json:"success_rate"`
}

type RollupResponse struct {
	Start       string              `json:"start"`
	End         string              `json:"end"`
	Days        int                 `json:"days"`
	Workers     []AggregateResponse `json:"workers"`
	Total       int                 `json:"total"`
	Delivered   int                 `json:"delivered"`
	SuccessRate float64             `json:"success_rate"`
}

type LeaderboardResponse struct {
	Policy    string              `json:"policy"`
	Threshold float64             `json:"threshold,omitempty"`
	Workers   []AggregateResponse `json:"workers"`
}

type PivotCellResponse struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
}

type BlockSummaryResponse struct {
	Label     string  `json:"label"`
	Total     int     `json:"total"`
	Delivered int     `json:"delivered"`
	Rate      float64 `json:"rate"`
}

type PivotRowResponse struct {
	Name   string                 `json:"name"`
	Cells  []PivotCellResponse    `json:"cells"`
	Blocks []BlockSummaryResponse `json:"blocks"`
	Grand  BlockSummaryResponse   `json:"grand"`
}

type PivotResponse struct {
	Mode       string             `json:"mode"`
	SlotLabels []string           `json:"slot_labels"`
	Rows       []PivotRowResponse `json:"rows"`
	GrandTotal PivotRowResponse   `json:"grand_total"`
	Skipped    int                `json:"skipped_records"`
}

type TrendDayResponse struct {
	Date        string  `json:"date"`
	Total       int     `json:"total"`
	Delivered   int     `json:"delivered"`
	SuccessRate float64 `json:"success_rate"`
}

type TrendsResponse struct {
	BestDay        TrendDayResponse `json:"best_day"`
	WorstDay       TrendDayResponse `json:"worst_day"`
	BusiestDay     TrendDayResponse `json:"busiest_day"`
	BestWeekday    string           `json:"best_weekday"`
	BestWeekdayAvg float64          `json:"best_weekday_avg"`
	AvgDailyVolume int              `json:"avg_daily_volume"`
}

type RenameRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type RenameResponse struct {
	From      string `json:"from"`
	To        string `json:"to"`
	AliasSize int    `json:"alias_count"`
}
