package dto

type ShipmentPayload struct {
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
}

type WorkerEntryPayload struct {
	Name        string            `json:"name"`
	Total       int               `json:"total"`
	Delivered   int               `json:"delivered"`
	SuccessRate float64           `json:"success_rate"`
	Shipments   []ShipmentPayload `json:"shipments,omitempty"`
}

type DailyRecordResponse struct {
	Date        string               `json:"date"`
	Total       int                  `json:"total"`
	Delivered   int                  `json:"delivered"`
	SuccessRate float64              `json:"success_rate"`
	Workers     []WorkerEntryPayload `json:"workers"`
}

type ListRecordsResponse struct {
	Records []DailyRecordResponse `json:"records"`
}

// Whole-record replacement body for PUT /records/{date}. The stored
// station totals are recomputed from the workers on save, so the body
// carries no station-level numbers.
type SaveRecordRequest struct {
	Workers []struct {
		Name      string            `json:"name"`
		Total     int               `json:"total"`
		Delivered int               `json:"delivered"`
		Shipments []ShipmentPayload `json:"shipments,omitempty"`
	} `json:"workers"`
}

type UploadResponse struct {
	RecordsSaved int      `json:"records_saved"`
	Dates        []string `json:"dates"`
}

type ShipmentMatch struct {
	Date       string `json:"date"`
	Worker     string `json:"worker"`
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
}

type ShipmentSearchResponse struct {
	Query   string          `json:"query"`
	Matches []ShipmentMatch `json:"matches"`
}
