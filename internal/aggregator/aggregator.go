package aggregator

import (
	"math"
	"sort"

	"freight-insights-go/internal/fields"
	"freight-insights-go/internal/types"
)

// DefaultCostPerDelayDay is the assumed cost of one delay day when the
// environment does not supply a valid override.
const DefaultCostPerDelayDay = 120.0

// minCarrierShipments is the group size below which a carrier is excluded
// from the delay ranking.
const minCarrierShipments = 5

// topLateLimit caps the late-shipment leaderboard.
const topLateLimit = 5

// Resolve maps every raw row to its resolved shipment view.
func Resolve(rows []types.Row) []types.Shipment {
	out := make([]types.Shipment, 0, len(rows))
	for _, r := range rows {
		out = append(out, fields.ResolveShipment(r))
	}
	return out
}

// Aggregate reduces the row set into the full dashboard bundle. Every metric
// is an independent pure reduction and tolerates an empty input. Values are
// full precision; rounding happens at the presentation boundary.
func Aggregate(rows []types.Row, costPerDelayDay float64) types.Bundle {
	shipments := Resolve(rows)

	b := types.Bundle{
		TotalShipments:   len(shipments),
		AvgLateDelayDays: AvgLateDelay(shipments),
		SavingsPotential: SavingsPotential(shipments, costPerDelayDay),
		CarrierRanking:   CarrierRanking(shipments),
		RiskDistribution: RiskDistribution(shipments),
		CostDistance:     CostDistanceScatter(shipments),
		ModeEmissions:    ModeEmissions(shipments),
		TotalEmissionsKg: TotalEmissions(shipments),
		RouteEmissions:   RouteEmissions(shipments),
		TopLate:          TopLateShipments(shipments),
		WeeklyOnTime:     WeeklyOnTime(shipments),
	}
	b.OnTimeCount, b.LateCount = OnTimeSplit(shipments)
	if b.TotalShipments > 0 {
		pct := 100 * float64(b.OnTimeCount) / float64(b.TotalShipments)
		b.OnTimePct = &pct
	}
	return b
}

// OnTimeSplit partitions the set by the delayDays <= 0 rule. Every shipment
// is exactly one of on-time or late.
func OnTimeSplit(shipments []types.Shipment) (onTime, late int) {
	for _, s := range shipments {
		if s.DelayDays <= 0 {
			onTime++
		} else {
			late++
		}
	}
	return onTime, late
}

// AvgLateDelay is the mean delay over late shipments only, 0 when none are
// late.
func AvgLateDelay(shipments []types.Shipment) float64 {
	sum := 0.0
	n := 0
	for _, s := range shipments {
		if s.DelayDays > 0 {
			sum += s.DelayDays
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// SavingsPotential sums delay days across late shipments at the configured
// cost per delay day.
func SavingsPotential(shipments []types.Shipment, costPerDelayDay float64) float64 {
	total := 0.0
	for _, s := range shipments {
		total += math.Max(s.DelayDays, 0) * costPerDelayDay
	}
	return total
}

// CarrierRanking groups shipments by carrier and ranks carriers with at
// least minCarrierShipments by mean delay, worst first. First-seen order is
// tracked explicitly so ties stay deterministic for a fixed input order.
func CarrierRanking(shipments []types.Shipment) []types.CarrierStats {
	order := []string{}
	count := map[string]int{}
	late := map[string]int{}
	delaySum := map[string]float64{}
	for _, s := range shipments {
		if _, seen := count[s.Carrier]; !seen {
			order = append(order, s.Carrier)
		}
		count[s.Carrier]++
		delaySum[s.Carrier] += s.DelayDays
		if s.DelayDays > 0 {
			late[s.Carrier]++
		}
	}

	ranking := []types.CarrierStats{}
	for _, c := range order {
		if count[c] < minCarrierShipments {
			continue
		}
		ranking = append(ranking, types.CarrierStats{
			Carrier:      c,
			Shipments:    count[c],
			LateCount:    late[c],
			AvgDelayDays: delaySum[c] / float64(count[c]),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].AvgDelayDays > ranking[j].AvgDelayDays
	})
	return ranking
}

// RiskDistribution is the histogram of classified risk buckets, emitted in
// the order the buckets first appear among the data.
func RiskDistribution(shipments []types.Shipment) []types.RiskBucket {
	order := []string{}
	count := map[string]int{}
	for _, s := range shipments {
		if _, seen := count[s.Risk]; !seen {
			order = append(order, s.Risk)
		}
		count[s.Risk]++
	}
	out := make([]types.RiskBucket, 0, len(order))
	for _, label := range order {
		out = append(out, types.RiskBucket{Label: label, Count: count[label]})
	}
	return out
}

// CostDistanceScatter filters to shipments with positive distance and cost
// and computes the Pearson correlation over the remaining points.
func CostDistanceScatter(shipments []types.Shipment) types.CostDistance {
	points := []types.ScatterPoint{}
	for _, s := range shipments {
		if s.DistanceKm > 0 && s.CostUsd > 0 {
			points = append(points, types.ScatterPoint{DistanceKm: s.DistanceKm, CostUsd: s.CostUsd})
		}
	}
	return types.CostDistance{Points: points, PearsonR: Pearson(points)}
}

// Pearson computes the correlation coefficient with the standard sum-based
// formula. Fewer than two points or a zero variance term yields 0, never a
// division by zero.
func Pearson(points []types.ScatterPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for _, p := range points {
		x, y := p.DistanceKm, p.CostUsd
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
		sumY2 += y * y
	}
	den := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if den == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / den
}

// TopLateShipments returns the worst late shipments, longest delay first.
// The sort is stable so equal delays keep the original row order.
func TopLateShipments(shipments []types.Shipment) []types.Shipment {
	late := []types.Shipment{}
	for _, s := range shipments {
		if s.DelayDays > 0 {
			late = append(late, s)
		}
	}
	sort.SliceStable(late, func(i, j int) bool {
		return late[i].DelayDays > late[j].DelayDays
	})
	if len(late) > topLateLimit {
		late = late[:topLateLimit]
	}
	return late
}
