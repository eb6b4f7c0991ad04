package analytics

import "pitchprice/models"

// obs builds a rate-bearing observation with the fields the derivations
// actually read. Rate 0 models a no-data row.
func obs(hotelID, city, scrapeDate, checkIn string, rate float64) models.RateObservation {
	return models.RateObservation{
		HotelID:      hotelID,
		HotelName:    hotelID,
		City:         city,
		CityType:     models.CityTypeEventHost,
		Segment:      models.SegmentLuxury,
		Proximity:    models.ProximityNear,
		CheckIn:      checkIn,
		CheckOut:     checkIn,
		Rate:         rate,
		Currency:     "CAD",
		Availability: models.AvailabilityAvailable,
		ScrapeDate:   scrapeDate,
	}
}

func hotel(id, city string, segment models.Segment) models.Hotel {
	return models.Hotel{
		ID:        id,
		Name:      id,
		City:      city,
		CityType:  models.CityTypeEventHost,
		Segment:   segment,
		Proximity: models.ProximityNear,
	}
}
