package analytics

import (
	"math"
	"sort"
	"time"

	"pitchprice/models"
)

// BuildLeadTimeCurves indexes every rate-bearing observation against its
// hotel's baseline and buckets the indexes by (city, days-to-event). This
// view always runs over the unfiltered, event-wide observation set so
// cross-city comparison is not distorted by the active filter.
//
// Baseline per hotel is the rate of its earliest-dated rate-bearing
// observation; a missing baseline defaults the index to 100. Days-to-event
// is the observation's explicit field when present, else check-in minus
// scrape date in whole days; observations with neither are dropped here.
func BuildLeadTimeCurves(obs []models.RateObservation) []models.LeadTimeCurve {
	baselines := make(map[string]*models.RateObservation)
	for i := range obs {
		o := &obs[i]
		if !o.HasRate() {
			continue
		}
		if cur, ok := baselines[o.HotelID]; !ok || o.ScrapeDate < cur.ScrapeDate {
			baselines[o.HotelID] = o
		}
	}

	type bucketKey struct {
		city string
		days int
	}
	sums := make(map[bucketKey]float64)
	counts := make(map[bucketKey]int)
	cityTypes := make(map[string]models.CityType)
	var cityOrder []string

	for i := range obs {
		o := &obs[i]
		if !o.HasRate() {
			continue
		}
		days, ok := daysToEvent(o)
		if !ok {
			continue
		}

		index := 100.0
		if b := baselines[o.HotelID]; b != nil && b.Rate > 0 {
			index = o.Rate / b.Rate * 100
		}

		key := bucketKey{city: o.City, days: days}
		if _, seen := cityTypes[o.City]; !seen {
			cityTypes[o.City] = cityTypeOf(o.CityType)
			cityOrder = append(cityOrder, o.City)
		}
		sums[key] += index
		counts[key]++
	}

	curves := make([]models.LeadTimeCurve, 0, len(cityOrder))
	for _, city := range cityOrder {
		curve := models.LeadTimeCurve{City: city, CityType: cityTypes[city]}
		for key, count := range counts {
			if key.city != city {
				continue
			}
			curve.Points = append(curve.Points, models.LeadTimePoint{
				DaysToEvent: key.days,
				AvgIndex:    sums[key] / float64(count),
				Samples:     count,
			})
		}
		// axis reads far out -> near term
		sort.Slice(curve.Points, func(i, j int) bool {
			return curve.Points[i].DaysToEvent > curve.Points[j].DaysToEvent
		})
		curves = append(curves, curve)
	}

	return curves
}

// daysToEvent resolves the lead-time axis value for one observation. The
// computed fallback is what lets control cities, which carry no explicit
// days_to_event, plot on the same axis.
func daysToEvent(o *models.RateObservation) (int, bool) {
	if o.DaysToEvent != nil {
		return *o.DaysToEvent, true
	}
	if o.CheckIn == "" || o.ScrapeDate == "" {
		return 0, false
	}
	checkIn, err := time.Parse("2006-01-02", o.CheckIn)
	if err != nil {
		return 0, false
	}
	scraped, err := time.Parse("2006-01-02", o.ScrapeDate)
	if err != nil {
		return 0, false
	}
	return int(math.Floor(checkIn.Sub(scraped).Hours() / 24)), true
}
