package uploads

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestAssembleRecordsGroupsByDate(t *testing.T) {
	rows := [][]string{
		{"Date", "Worker", "Total", "Delivered"},
		{"2026-03-01", "Ana", "10", "9"},
		{"2026-03-01", "Ben", "4", "4"},
		{"", "", "", ""},
		{"2026-03-02", "Ana", "7", "6"},
	}

	records, err := assembleRecords(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(records[0].Workers) != 2 || records[0].Workers[1].Name != "Ben" {
		t.Fatalf("first record workers = %+v", records[0].Workers)
	}
	if records[0].StationTotal.Total != 14 || records[0].StationTotal.Delivered != 13 {
		t.Fatalf("station total = %+v, want 13/14", records[0].StationTotal)
	}
}

func TestAssembleRecordsRejectsBadRows(t *testing.T) {
	if _, err := assembleRecords([][]string{{"2026-03-01", "", "10", "9"}}); err == nil {
		t.Fatal("expected error for empty worker name")
	}
	if _, err := assembleRecords([][]string{{"2026-03-01", "Ana", "-1", "0"}}); err == nil {
		t.Fatal("expected error for negative count")
	}
	if _, err := assembleRecords([][]string{
		{"2026-03-01", "Ana", "10", "9"},
		{"not-a-date", "Ben", "1", "1"},
	}); err == nil {
		t.Fatal("expected error for bad date past the header row")
	}
}

func TestAssembleRecordsAcceptsInconsistentDelivered(t *testing.T) {
	// delivered > total is a data-quality signal, not an ingest error.
	records, err := assembleRecords([][]string{{"2026-03-01", "Ana", "10", "12"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Workers[0].Delivered != 12 {
		t.Fatalf("delivered = %d, want 12", records[0].Workers[0].Delivered)
	}
}

func TestParseXLSXRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	cells := [][]any{
		{"Date", "Worker", "Total", "Delivered"},
		{"2026-03-01", "Ana", 10, 9},
		{"2026-03-02", "Ben", 5, 5},
	}
	for i, row := range cells {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}

	records, err := ParseXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Workers[0].Name != "Ben" || records[1].Workers[0].Total != 5 {
		t.Fatalf("second record = %+v", records[1].Workers)
	}
}
