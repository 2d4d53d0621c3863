package export

import (
	"fmt"
	"station-metrics-service/internal/domain"
	"station-metrics-service/internal/services"

	"github.com/xuri/excelize/v2"
)

// Renders engine output as xlsx workbooks. Values only: visual styling
// belongs to downstream tooling, and the numeric semantics (aggregate
// rates as percentages, pivot rates as fractions) are written exactly
// as the engine produced them.

const (
	rollupSheetName = "Rollup"
	pivotSheetName  = "Pivot"
)

// WriteRollup renders a range summary: one worker per row, a station
// total row last.
func WriteRollup(summary services.RangeSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rollupSheetName); err != nil {
		return nil, fmt.Errorf("write rollup: rename sheet: %w", err)
	}

	header := []any{"Worker", "Total", "Delivered", "Failed", "Days Worked", "Success Rate %"}
	if err := setRow(f, rollupSheetName, 1, header); err != nil {
		return nil, fmt.Errorf("write rollup: %w", err)
	}

	row := 2
	for _, a := range summary.PerWorker {
		values := []any{a.Name, a.Total, a.Delivered, a.Failed, a.DaysWorked, a.SuccessRate}
		if err := setRow(f, rollupSheetName, row, values); err != nil {
			return nil, fmt.Errorf("write rollup: worker %q: %w", a.Name, err)
		}
		row++
	}

	station := []any{
		"STATION TOTAL",
		summary.Station.Total,
		summary.Station.Delivered,
		summary.Station.Total - summary.Station.Delivered,
		summary.Days,
		summary.StationRate(),
	}
	if err := setRow(f, rollupSheetName, row, station); err != nil {
		return nil, fmt.Errorf("write rollup: station row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write rollup: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePivot renders the matrix with slot columns first, then one
// total/delivered/rate column triple per block, then the grand triple.
// The grand-total row is always last.
func WritePivot(pivot domain.Pivot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", pivotSheetName); err != nil {
		return nil, fmt.Errorf("write pivot: rename sheet: %w", err)
	}

	header := []any{"Worker"}
	for _, label := range pivot.SlotLabels {
		header = append(header, label)
	}
	for _, b := range pivot.Blocks {
		header = append(header, b.Label+" Total", b.Label+" Delivered", b.Label+" Rate")
	}
	header = append(header, "Grand Total", "Grand Delivered", "Grand Rate")
	if err := setRow(f, pivotSheetName, 1, header); err != nil {
		return nil, fmt.Errorf("write pivot: %w", err)
	}

	rows := append([]domain.PivotRow{}, pivot.Rows...)
	rows = append(rows, pivot.GrandTotal)

	for i, r := range rows {
		values := []any{r.Name}
		for _, c := range r.Cells {
			values = append(values, c.Total)
		}
		for _, b := range r.Blocks {
			values = append(values, b.Total, b.Delivered, b.Rate)
		}
		values = append(values, r.Overall.Total, r.Overall.Delivered, r.Overall.Rate)

		if err := setRow(f, pivotSheetName, i+2, values); err != nil {
			return nil, fmt.Errorf("write pivot: row %q: %w", r.Name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write pivot: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name col=%d row=%d: %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
