package insights

import (
	"fmt"
	"math"

	"freight-insights-go/internal/types"
)

// Generate turns the aggregate bundle into the ordered list of insight
// sentences the dashboard cards show verbatim. Each sentence has its own
// emission gate; rounding happens here, at the presentation boundary.
func Generate(b types.Bundle, costPerDelayDay float64) []string {
	out := []string{}

	out = append(out, fmt.Sprintf(
		"Eliminating avoidable delays could save an estimated $%.0f at $%.0f per delay day.",
		b.SavingsPotential, costPerDelayDay))

	if len(b.CarrierRanking) > 0 {
		worst := b.CarrierRanking[0]
		if worst.LateCount >= 2 {
			out = append(out, fmt.Sprintf(
				"%s has the worst average delay: %.1f days across %d late shipments.",
				worst.Carrier, worst.AvgDelayDays, worst.LateCount))
		}
	}

	if b.TotalShipments > 0 && b.OnTimePct != nil {
		out = append(out, fmt.Sprintf(
			"%.1f%% of %d shipments arrived on time.",
			*b.OnTimePct, b.TotalShipments))
	}

	if n := highRiskCount(b.RiskDistribution); n > 0 {
		out = append(out, fmt.Sprintf(
			"%d shipments are flagged High or Critical risk and need review.", n))
	}

	if s := correlationSentence(b.CostDistance); s != "" {
		out = append(out, s)
	}

	if len(b.RouteEmissions) > 0 {
		top := b.RouteEmissions[0]
		out = append(out, fmt.Sprintf(
			"%s is the heaviest emitting route at %.0f kg CO2.",
			top.Route, top.EmissionsKg))
	}

	return out
}

func highRiskCount(dist []types.RiskBucket) int {
	n := 0
	for _, b := range dist {
		if b.Label == "High" || b.Label == "Critical" {
			n += b.Count
		}
	}
	return n
}

// correlationSentence requires at least 3 valid points and |r| >= 0.3.
func correlationSentence(cd types.CostDistance) string {
	if len(cd.Points) < 3 || math.Abs(cd.PearsonR) < 0.3 {
		return ""
	}
	strength := "moderate"
	if math.Abs(cd.PearsonR) >= 0.7 {
		strength = "strong"
	}
	direction := "positive"
	if cd.PearsonR < 0 {
		direction = "negative"
	}
	return fmt.Sprintf(
		"Cost shows a %s %s correlation with route distance (r = %.2f).",
		strength, direction, cd.PearsonR)
}
