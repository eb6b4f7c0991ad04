package analytics

import (
	"strings"

	"pitchprice/models"
)

// ComputePremiums compares event-host (city, segment) average rates
// against the designated control city's average for the same segment.
// Runs over the unfiltered observation set. Pairs without a control
// baseline are omitted, never zero-filled.
func ComputePremiums(obs []models.RateObservation, controlCity string) []models.SegmentPremium {
	type pairKey struct {
		city    string
		segment models.Segment
	}
	sums := make(map[pairKey]float64)
	counts := make(map[pairKey]int)
	cityTypes := make(map[string]models.CityType)
	var cityOrder []string

	for i := range obs {
		o := &obs[i]
		if !o.HasRate() {
			continue
		}
		if _, seen := cityTypes[o.City]; !seen {
			cityTypes[o.City] = cityTypeOf(o.CityType)
			cityOrder = append(cityOrder, o.City)
		}
		key := pairKey{city: o.City, segment: o.Segment}
		sums[key] += o.Rate
		counts[key]++
	}

	control := make(map[models.Segment]float64)
	for _, city := range cityOrder {
		if !strings.EqualFold(city, controlCity) {
			continue
		}
		for _, segment := range models.SegmentOrder {
			key := pairKey{city: city, segment: segment}
			if counts[key] > 0 {
				control[segment] = sums[key] / float64(counts[key])
			}
		}
	}

	var premiums []models.SegmentPremium
	for _, city := range cityOrder {
		if cityTypes[city] == models.CityTypeControl || strings.EqualFold(city, controlCity) {
			continue
		}
		for _, segment := range models.SegmentOrder {
			key := pairKey{city: city, segment: segment}
			if counts[key] == 0 {
				continue
			}
			baseline, ok := control[segment]
			if !ok || baseline <= 0 {
				continue
			}
			hostAvg := sums[key] / float64(counts[key])
			premiums = append(premiums, models.SegmentPremium{
				City:       city,
				Segment:    segment,
				HostAvg:    hostAvg,
				ControlAvg: baseline,
				Premium:    hostAvg - baseline,
				PremiumPct: (hostAvg/baseline - 1) * 100,
			})
		}
	}

	return premiums
}
