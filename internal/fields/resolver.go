package fields

import (
	"math"
	"strconv"
	"strings"
	"time"

	"freight-insights-go/internal/types"
)

// Fallback key orders for each canonical field. Source spreadsheets name the
// same column half a dozen ways; the first candidate with a matching row key
// wins. When multiple raw headers mean the same thing, they all appear here.
var (
	delayKeys       = []string{"actual_delay_days", "DelayDays", "delay_days", "delay", "Delay"}
	carrierKeys     = []string{"carrier_name", "Carrier", "carrier"}
	distanceKeys    = []string{"route_distance_km", "DistanceKm", "distance_km"}
	costKeys        = []string{"cost_usd", "CostUSD", "cost"}
	riskKeys        = []string{"risk_level", "RiskLevel", "risk", "ai_risk_score"}
	modeKeys        = []string{"transport_mode", "mode", "Mode"}
	emissionsKeys   = []string{"emissions_kg", "EmissionsKg", "carbon_emissions_kg"}
	weightKeys      = []string{"weight_kg", "WeightKg"}
	shipmentKeys    = []string{"shipment_id", "ShipmentId", "shipment"}
	shipmentAltKeys = []string{"ID", "id", "Reference", "reference"}
	originKeys      = []string{"origin_city", "Origin", "origin"}
	destinationKeys = []string{"destination_city", "Destination", "destination"}
	dateKeys        = []string{"ShipmentDate", "shipment_date", "Date", "date"}
)

// normalizeKey lowers the key and strips underscores, so RouteDistanceKm,
// route_distance_km and ROUTE_DISTANCE_KM all compare equal.
func normalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), "_", "")
}

// Lookup probes the row for each candidate key in order and returns the
// first value found. Matching is case-insensitive with underscores ignored.
func Lookup(row types.Row, candidates []string) (interface{}, bool) {
	for _, cand := range candidates {
		want := normalizeKey(cand)
		for k, v := range row {
			if normalizeKey(k) == want {
				return v, true
			}
		}
	}
	return nil, false
}

// ToNumber is the single numeric coercion used everywhere. It is total:
// missing, malformed or NaN values come back as 0, never as NaN.
func ToNumber(v interface{}) float64 {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return 0
	}
	return f
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toString(v interface{}, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

// ClassifyRisk maps a raw risk value to a bucket. Keyword match takes
// priority over numeric thresholds; an unrecognized non-empty string keeps
// its own bucket verbatim.
func ClassifyRisk(v interface{}) string {
	if v == nil {
		return "Unknown"
	}
	if s, ok := v.(string); ok {
		l := strings.ToLower(strings.TrimSpace(s))
		switch {
		case l == "":
			return "Unknown"
		case strings.Contains(l, "critical"):
			return "Critical"
		case strings.Contains(l, "high"):
			return "High"
		case strings.Contains(l, "medium"):
			return "Medium"
		case strings.Contains(l, "low"):
			return "Low"
		}
	}
	if f, ok := toFloat(v); ok && !math.IsNaN(f) {
		switch {
		case f <= 0.3:
			return "Low"
		case f <= 0.6:
			return "Medium"
		case f <= 0.8:
			return "High"
		default:
			return "Critical"
		}
	}
	return toString(v, "Unknown")
}

// dateLayouts covers the formats excelize hands back plus common exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06 15:04",
	"02 Jan 2006",
}

// ParseDate attempts every known layout. Rows whose date does not parse are
// excluded from date-based aggregates entirely.
func ParseDate(v interface{}) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func lookupNumber(row types.Row, candidates []string) float64 {
	v, ok := Lookup(row, candidates)
	if !ok {
		return 0
	}
	return ToNumber(v)
}

func lookupString(row types.Row, candidates []string, def string) string {
	v, ok := Lookup(row, candidates)
	if !ok {
		return def
	}
	return toString(v, def)
}

// ResolveShipment applies every fallback table once and returns the
// resolved view of the row. It never fails: unmatched fields carry their
// documented defaults.
func ResolveShipment(row types.Row) types.Shipment {
	s := types.Shipment{
		DelayDays:   lookupNumber(row, delayKeys),
		Carrier:     lookupString(row, carrierKeys, "Unknown"),
		DistanceKm:  lookupNumber(row, distanceKeys),
		CostUsd:     lookupNumber(row, costKeys),
		Mode:        lookupString(row, modeKeys, "Unknown"),
		EmissionsKg: lookupNumber(row, emissionsKeys),
		WeightKg:    lookupNumber(row, weightKeys),
		Origin:      lookupString(row, originKeys, "Unknown"),
		Destination: lookupString(row, destinationKeys, "Unknown"),
	}

	if v, ok := Lookup(row, riskKeys); ok {
		s.Risk = ClassifyRisk(v)
	} else {
		s.Risk = "Unknown"
	}

	s.ShipmentID = lookupString(row, shipmentKeys, "")
	if s.ShipmentID == "" {
		s.ShipmentID = lookupString(row, shipmentAltKeys, "-")
	}

	if v, ok := Lookup(row, dateKeys); ok {
		if t, parsed := ParseDate(v); parsed {
			s.Date = t
			s.HasDate = true
		}
	}

	return s
}
