package insights

import (
	"strings"
	"testing"

	"freight-insights-go/internal/types"
)

func pct(v float64) *float64 { return &v }

func TestGenerate_EmptyBundle(t *testing.T) {
	got := Generate(types.Bundle{}, 120)
	// only the savings sentence is unconditional
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %v", len(got), got)
	}
	if !strings.Contains(got[0], "$0") {
		t.Errorf("savings sentence = %q", got[0])
	}
}

func TestGenerate_WorstCarrierGate(t *testing.T) {
	b := types.Bundle{
		TotalShipments: 10,
		OnTimePct:      pct(80),
		CarrierRanking: []types.CarrierStats{
			{Carrier: "SlowCo", Shipments: 6, LateCount: 1, AvgDelayDays: 4},
		},
	}
	for _, s := range Generate(b, 120) {
		if strings.Contains(s, "SlowCo") {
			t.Errorf("carrier with one late shipment must not be called out: %q", s)
		}
	}
	b.CarrierRanking[0].LateCount = 2
	found := false
	for _, s := range Generate(b, 120) {
		if strings.Contains(s, "SlowCo") {
			found = true
		}
	}
	if !found {
		t.Error("expected worst-carrier sentence with 2 late shipments")
	}
}

func TestGenerate_OnTimeSentence(t *testing.T) {
	b := types.Bundle{TotalShipments: 4, OnTimePct: pct(75)}
	found := false
	for _, s := range Generate(b, 120) {
		if strings.Contains(s, "75.0%") && strings.Contains(s, "4 shipments") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing on-time sentence: %v", Generate(b, 120))
	}
}

func TestGenerate_RiskGate(t *testing.T) {
	b := types.Bundle{
		TotalShipments:   3,
		OnTimePct:        pct(100),
		RiskDistribution: []types.RiskBucket{{Label: "Low", Count: 3}},
	}
	for _, s := range Generate(b, 120) {
		if strings.Contains(s, "risk") {
			t.Errorf("no high/critical rows, got %q", s)
		}
	}
	b.RiskDistribution = append(b.RiskDistribution,
		types.RiskBucket{Label: "High", Count: 2},
		types.RiskBucket{Label: "Critical", Count: 1})
	found := false
	for _, s := range Generate(b, 120) {
		if strings.Contains(s, "3 shipments are flagged High or Critical") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected risk sentence: %v", Generate(b, 120))
	}
}

func TestGenerate_CorrelationGates(t *testing.T) {
	points := []types.ScatterPoint{{DistanceKm: 1, CostUsd: 1}, {DistanceKm: 2, CostUsd: 2}, {DistanceKm: 3, CostUsd: 3}}
	cases := []struct {
		name     string
		cd       types.CostDistance
		wantWord string
	}{
		{"too few points", types.CostDistance{Points: points[:2], PearsonR: 0.9}, ""},
		{"weak r", types.CostDistance{Points: points, PearsonR: 0.2}, ""},
		{"moderate positive", types.CostDistance{Points: points, PearsonR: 0.5}, "moderate positive"},
		{"strong positive", types.CostDistance{Points: points, PearsonR: 0.85}, "strong positive"},
		{"strong negative", types.CostDistance{Points: points, PearsonR: -0.75}, "strong negative"},
	}
	for _, c := range cases {
		b := types.Bundle{CostDistance: c.cd}
		var sentence string
		for _, s := range Generate(b, 120) {
			if strings.Contains(s, "correlation") {
				sentence = s
			}
		}
		if c.wantWord == "" {
			if sentence != "" {
				t.Errorf("%s: unexpected sentence %q", c.name, sentence)
			}
			continue
		}
		if !strings.Contains(sentence, c.wantWord) {
			t.Errorf("%s: sentence %q missing %q", c.name, sentence, c.wantWord)
		}
	}
}

func TestGenerate_TopRouteSentence(t *testing.T) {
	b := types.Bundle{
		RouteEmissions: []types.RouteEmission{
			{Route: "Delhi → Mumbai", EmissionsKg: 812.4},
			{Route: "Pune → Surat", EmissionsKg: 100},
		},
	}
	found := false
	for _, s := range Generate(b, 120) {
		if strings.Contains(s, "Delhi → Mumbai") && strings.Contains(s, "812") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected top-route sentence: %v", Generate(b, 120))
	}
}

func TestGenerate_Order(t *testing.T) {
	b := types.Bundle{
		TotalShipments:   6,
		OnTimePct:        pct(50),
		SavingsPotential: 720,
		CarrierRanking:   []types.CarrierStats{{Carrier: "SlowCo", LateCount: 3, AvgDelayDays: 2}},
		RiskDistribution: []types.RiskBucket{{Label: "High", Count: 1}},
		CostDistance: types.CostDistance{
			Points:   []types.ScatterPoint{{DistanceKm: 1, CostUsd: 1}, {DistanceKm: 2, CostUsd: 2}, {DistanceKm: 3, CostUsd: 3}},
			PearsonR: 0.95,
		},
		RouteEmissions: []types.RouteEmission{{Route: "A → B", EmissionsKg: 10}},
	}
	got := Generate(b, 120)
	if len(got) != 6 {
		t.Fatalf("expected all 6 sentences, got %d: %v", len(got), got)
	}
	order := []string{"save", "SlowCo", "on time", "risk", "correlation", "A → B"}
	for i, frag := range order {
		if !strings.Contains(got[i], frag) {
			t.Errorf("sentence %d = %q, expected to contain %q", i, got[i], frag)
		}
	}
}
