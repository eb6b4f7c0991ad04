package analytics

import (
	"math"

	"pitchprice/models"
)

// Summarize reduces a filtered observation set to headline statistics.
// Only rate-bearing observations count. Min and max use strict comparison
// in one left-to-right pass, so the first minimal/maximal record in input
// order wins ties.
func Summarize(obs []models.RateObservation) models.RateSummary {
	var summary models.RateSummary

	var sum float64
	var n int
	hotels := make(map[string]bool)

	for i := range obs {
		o := obs[i]
		if !o.HasRate() {
			continue
		}
		sum += o.Rate
		n++
		hotels[o.HotelID] = true

		if summary.Min == nil || o.Rate < summary.Min.Rate {
			record := o
			summary.Min = &record
		}
		if summary.Max == nil || o.Rate > summary.Max.Rate {
			record := o
			summary.Max = &record
		}
	}

	if n > 0 {
		summary.HasRates = true
		summary.AvgRate = int(math.Round(sum / float64(n)))
	}
	summary.HotelCount = len(hotels)

	return summary
}
