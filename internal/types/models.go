package types

import "time"

// Row is one raw spreadsheet record. Keys are whatever the source file used
// as column headers; no two rows need to share keys. Rows are read-only
// inputs and are never mutated.
type Row map[string]interface{}

// Shipment is the resolved-field view of one Row. Every field carries the
// documented default when the source row has no matching column.
type Shipment struct {
	ShipmentID  string    `json:"shipment_id"`
	Carrier     string    `json:"carrier"`
	Mode        string    `json:"mode"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DelayDays   float64   `json:"delay_days"`
	DistanceKm  float64   `json:"distance_km"`
	CostUsd     float64   `json:"cost_usd"`
	WeightKg    float64   `json:"weight_kg"`
	EmissionsKg float64   `json:"emissions_kg"`
	Risk        string    `json:"risk"`
	Date        time.Time `json:"date,omitempty"`
	HasDate     bool      `json:"-"`
}

// Route returns the "origin → destination" grouping key.
func (s Shipment) Route() string {
	return s.Origin + " → " + s.Destination
}
