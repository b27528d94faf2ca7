package aggregator

import (
	"testing"

	"freight-insights-go/internal/types"
)

func TestEstimateEmissions_AirScenario(t *testing.T) {
	s := types.Shipment{Mode: "Air", DistanceKm: 1000, WeightKg: 2000}
	// tons=2, factor=500 -> 1000*500*2/1000 = 1000
	if got := EstimateEmissions(s); got != 1000 {
		t.Errorf("emissions = %v, want 1000", got)
	}
}

func TestEstimateEmissions_ActualWins(t *testing.T) {
	s := types.Shipment{Mode: "Air", DistanceKm: 1000, WeightKg: 2000, EmissionsKg: 42}
	if got := EstimateEmissions(s); got != 42 {
		t.Errorf("reported emissions must win, got %v", got)
	}
}

func TestEstimateEmissions_DefaultsToOneTonAndRoad(t *testing.T) {
	s := types.Shipment{Mode: "Drone", DistanceKm: 100}
	// unrecognized mode -> Road factor 62, no weight -> 1 ton
	if got := EstimateEmissions(s); got != 100*62.0/1000 {
		t.Errorf("emissions = %v", got)
	}
}

func TestEstimateEmissions_ModeCaseInsensitive(t *testing.T) {
	a := EstimateEmissions(types.Shipment{Mode: "sea", DistanceKm: 1000})
	b := EstimateEmissions(types.Shipment{Mode: "Sea", DistanceKm: 1000})
	if a != b || a != 10 {
		t.Errorf("sea=%v Sea=%v, want 10", a, b)
	}
}

func TestModeEmissions_GroupsInFirstSeenOrder(t *testing.T) {
	shipments := []types.Shipment{
		{Mode: "Rail", DistanceKm: 1000},
		{Mode: "Air", DistanceKm: 1000},
		{Mode: "Rail", DistanceKm: 1000},
	}
	got := ModeEmissions(shipments)
	if len(got) != 2 {
		t.Fatalf("got %d modes", len(got))
	}
	if got[0].Mode != "Rail" || got[0].EmissionsKg != 44 {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Mode != "Air" || got[1].EmissionsKg != 500 {
		t.Errorf("got[1] = %+v", got[1])
	}
	if total := TotalEmissions(shipments); total != 544 {
		t.Errorf("total = %v", total)
	}
}

func TestRouteEmissions_RankedDescending(t *testing.T) {
	shipments := []types.Shipment{
		{Origin: "Delhi", Destination: "Mumbai", Mode: "Road", DistanceKm: 100},
		{Origin: "Chennai", Destination: "Kolkata", Mode: "Air", DistanceKm: 100},
		{Origin: "Delhi", Destination: "Mumbai", Mode: "Road", DistanceKm: 100},
	}
	got := RouteEmissions(shipments)
	if len(got) != 2 {
		t.Fatalf("got %d routes", len(got))
	}
	if got[0].Route != "Chennai → Kolkata" {
		t.Errorf("heaviest route first, got %q", got[0].Route)
	}
	if got[1].Route != "Delhi → Mumbai" || got[1].EmissionsKg != 2*100*62.0/1000 {
		t.Errorf("got[1] = %+v", got[1])
	}
}
