package aggregator

import (
	"fmt"
	"sort"

	"freight-insights-go/internal/types"
)

// weekKey formats an ISO week bucket as GGGG-Www using week-year semantics,
// so rows near a year boundary land in the right bucket. Zero-padded keys
// sort chronologically as strings.
func weekKey(s types.Shipment) string {
	year, week := s.Date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeeklyOnTime buckets dated shipments by ISO week and computes the
// per-week on-time percentage. Rows without a parseable date are excluded
// from the series entirely. It also identifies the single worst week and
// the largest week-over-week drop in chronological order.
func WeeklyOnTime(shipments []types.Shipment) types.WeeklySeries {
	total := map[string]int{}
	onTime := map[string]int{}
	for _, s := range shipments {
		if !s.HasDate {
			continue
		}
		k := weekKey(s)
		total[k]++
		if s.DelayDays <= 0 {
			onTime[k]++
		}
	}

	keys := make([]string, 0, len(total))
	for k := range total {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := types.WeeklySeries{}
	for _, k := range keys {
		series.Weeks = append(series.Weeks, types.WeekPoint{
			Week:      k,
			Shipments: total[k],
			OnTime:    onTime[k],
			OnTimePct: 100 * float64(onTime[k]) / float64(total[k]),
		})
	}

	for i := range series.Weeks {
		w := series.Weeks[i]
		if series.WorstWeek == nil || w.OnTimePct < series.WorstWeek.OnTimePct {
			series.WorstWeek = &series.Weeks[i]
		}
		if i == 0 {
			continue
		}
		prev := series.Weeks[i-1]
		delta := w.OnTimePct - prev.OnTimePct
		if delta < 0 && (series.LargestDrop == nil || delta < series.LargestDrop.DeltaPct) {
			series.LargestDrop = &types.WeekDelta{
				FromWeek: prev.Week,
				ToWeek:   w.Week,
				DeltaPct: delta,
			}
		}
	}
	return series
}
