// internal/types/kpi_models.go
package types

// --------------------------------------------
// FINAL output delivered to the dashboard frontend
// --------------------------------------------
type Bundle struct {
	TotalShipments int      `json:"total_shipments"`
	OnTimeCount    int      `json:"on_time_count"`
	LateCount      int      `json:"late_count"`
	OnTimePct      *float64 `json:"on_time_pct,omitempty"` // nil when there are no rows

	AvgLateDelayDays float64 `json:"avg_late_delay_days"`
	SavingsPotential float64 `json:"savings_potential_usd"`

	CarrierRanking   []CarrierStats  `json:"carrier_ranking"`
	RiskDistribution []RiskBucket    `json:"risk_distribution"`
	CostDistance     CostDistance    `json:"cost_distance"`
	ModeEmissions    []ModeEmission  `json:"mode_emissions"`
	TotalEmissionsKg float64         `json:"total_emissions_kg"`
	RouteEmissions   []RouteEmission `json:"route_emissions"`
	TopLate          []Shipment      `json:"top_late_shipments"`
	WeeklyOnTime     WeeklySeries    `json:"weekly_on_time"`

	Insights []string `json:"insights"`
}

// --------------------------------------------
// Per-carrier delay statistics (ranking entry)
// --------------------------------------------
type CarrierStats struct {
	Carrier      string  `json:"carrier"`
	Shipments    int     `json:"shipments"`
	LateCount    int     `json:"late_count"`
	AvgDelayDays float64 `json:"avg_delay_days"`
}

// --------------------------------------------
// Risk histogram entry, in first-seen order
// --------------------------------------------
type RiskBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// --------------------------------------------
// Cost vs distance scatter + Pearson r
// --------------------------------------------
type CostDistance struct {
	Points   []ScatterPoint `json:"points"`
	PearsonR float64        `json:"pearson_r"`
}

type ScatterPoint struct {
	DistanceKm float64 `json:"distance_km"`
	CostUsd    float64 `json:"cost_usd"`
}

// --------------------------------------------
// Emissions groupings
// --------------------------------------------
type ModeEmission struct {
	Mode        string  `json:"mode"`
	EmissionsKg float64 `json:"emissions_kg"`
}

type RouteEmission struct {
	Route       string  `json:"route"`
	EmissionsKg float64 `json:"emissions_kg"`
}

// --------------------------------------------
// Weekly on-time series (ISO week buckets)
// --------------------------------------------
type WeeklySeries struct {
	Weeks       []WeekPoint `json:"weeks"`
	WorstWeek   *WeekPoint  `json:"worst_week,omitempty"`
	LargestDrop *WeekDelta  `json:"largest_drop,omitempty"`
}

type WeekPoint struct {
	Week      string  `json:"week"` // GGGG-Www, ISO week-year
	Shipments int     `json:"shipments"`
	OnTime    int     `json:"on_time"`
	OnTimePct float64 `json:"on_time_pct"`
}

type WeekDelta struct {
	FromWeek string  `json:"from_week"`
	ToWeek   string  `json:"to_week"`
	DeltaPct float64 `json:"delta_pct"` // negative means a drop
}
