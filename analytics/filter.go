package analytics

import (
	"strings"

	"pitchprice/models"
)

// Filter returns the observations matching every axis of the criteria.
// The "all" sentinel (or an empty axis) always passes. Input order is
// preserved; fully unconstrained criteria return the input untouched.
func Filter(obs []models.RateObservation, c models.FilterCriteria) []models.RateObservation {
	if c.Unconstrained() {
		return obs
	}

	dates := dateSet(c.Dates)
	out := make([]models.RateObservation, 0, len(obs))
	for i := range obs {
		o := &obs[i]
		if !axisMatchesFold(c.City, o.City) {
			continue
		}
		if !axisMatches(c.CityType, string(cityTypeOf(o.CityType))) {
			continue
		}
		if !axisMatches(c.Segment, string(o.Segment)) {
			continue
		}
		if !axisMatches(c.Proximity, string(o.Proximity)) {
			continue
		}
		if dates != nil && !dates[o.CheckIn] {
			continue
		}
		out = append(out, *o)
	}
	return out
}

// FilterHotels applies the city, city-kind, segment, and proximity axes to
// the hotel roster. The date axis does not apply to hotels.
func FilterHotels(hotels []models.Hotel, c models.FilterCriteria) []models.Hotel {
	if c.Unconstrained() {
		return hotels
	}

	out := make([]models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if !axisMatchesFold(c.City, h.City) {
			continue
		}
		if !axisMatches(c.CityType, string(cityTypeOf(h.CityType))) {
			continue
		}
		if !axisMatches(c.Segment, string(h.Segment)) {
			continue
		}
		if !axisMatches(c.Proximity, string(h.Proximity)) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func axisMatches(want, have string) bool {
	return want == "" || want == models.FilterAll || want == have
}

func axisMatchesFold(want, have string) bool {
	return want == "" || want == models.FilterAll || strings.EqualFold(want, have)
}

func cityTypeOf(ct models.CityType) models.CityType {
	if ct == "" {
		return models.CityTypeEventHost
	}
	return ct
}

func dateSet(dates []string) map[string]bool {
	if len(dates) == 0 {
		return nil
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
