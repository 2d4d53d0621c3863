package uploads

import (
	"errors"
	"fmt"
	"io"
	"station-metrics-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an xlsx upload into DailyRecords.
func ParseXLSX(r io.Reader) ([]domain.DailyRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("parse xlsx: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: read sheet %q: %w", sheets[0], err)
	}

	records, err := assembleRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: sheet %q: %w", sheets[0], err)
	}
	return records, nil
}
