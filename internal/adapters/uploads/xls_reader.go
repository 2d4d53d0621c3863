package uploads

import (
	"errors"
	"fmt"
	"io"
	"station-metrics-service/internal/domain"

	"github.com/extrame/xls"
)

// ParseXLS reads the first sheet of a legacy .xls upload. Some station
// tooling still emits the old binary format, so both readers share the
// same row layout.
func ParseXLS(r io.ReadSeeker) ([]domain.DailyRecord, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("parse xls: open workbook: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("parse xls: workbook has no sheets")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}

		cells := make([]string, 0, 4)
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, cells)
	}

	records, err := assembleRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("parse xls: sheet %q: %w", sheet.Name, err)
	}
	return records, nil
}
