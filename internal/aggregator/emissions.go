package aggregator

import (
	"sort"
	"strings"

	"freight-insights-go/internal/types"
)

// modeFactors are emission factors in g CO2 per ton-km.
var modeFactors = map[string]float64{
	"Air":  500,
	"Road": 62,
	"Rail": 22,
	"Sea":  10,
}

// defaultModeFactor applies when the transport mode is unrecognized.
const defaultModeFactor = 62 // Road

// modeFactor resolves the emission factor for a transport mode,
// case-insensitively.
func modeFactor(mode string) float64 {
	m := strings.TrimSpace(strings.ToLower(mode))
	for name, f := range modeFactors {
		if strings.ToLower(name) == m {
			return f
		}
	}
	return defaultModeFactor
}

// EstimateEmissions returns the shipment's actual emissions when reported,
// otherwise an estimate of distance × factor × tons / 1000. A shipment with
// no weight counts as one ton.
func EstimateEmissions(s types.Shipment) float64 {
	if s.EmissionsKg > 0 {
		return s.EmissionsKg
	}
	tons := 1.0
	if s.WeightKg > 0 {
		tons = s.WeightKg / 1000
	}
	return s.DistanceKm * modeFactor(s.Mode) * tons / 1000
}

// ModeEmissions sums per-mode emissions, modes in first-seen order.
func ModeEmissions(shipments []types.Shipment) []types.ModeEmission {
	order := []string{}
	sums := map[string]float64{}
	for _, s := range shipments {
		if _, seen := sums[s.Mode]; !seen {
			order = append(order, s.Mode)
		}
		sums[s.Mode] += EstimateEmissions(s)
	}
	out := make([]types.ModeEmission, 0, len(order))
	for _, m := range order {
		out = append(out, types.ModeEmission{Mode: m, EmissionsKg: sums[m]})
	}
	return out
}

// TotalEmissions sums estimated emissions over the whole set.
func TotalEmissions(shipments []types.Shipment) float64 {
	total := 0.0
	for _, s := range shipments {
		total += EstimateEmissions(s)
	}
	return total
}

// RouteEmissions groups estimated emissions by "origin → destination" and
// ranks routes heaviest first. The sort is stable over first-seen order.
func RouteEmissions(shipments []types.Shipment) []types.RouteEmission {
	order := []string{}
	sums := map[string]float64{}
	for _, s := range shipments {
		route := s.Route()
		if _, seen := sums[route]; !seen {
			order = append(order, route)
		}
		sums[route] += EstimateEmissions(s)
	}
	out := make([]types.RouteEmission, 0, len(order))
	for _, r := range order {
		out = append(out, types.RouteEmission{Route: r, EmissionsKg: sums[r]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EmissionsKg > out[j].EmissionsKg
	})
	return out
}
