package models

// Availability status values as produced by the collector
const (
	AvailabilityAvailable = "available"
	AvailabilitySoldOut   = "sold_out"
	AvailabilityError     = "error"
	AvailabilityUnknown   = "unknown"
)

// RateObservation is one scraped hotel/date rate, stamped with the scrape
// date of the batch it arrived in. Dates are canonical ISO strings
// (YYYY-MM-DD) so lexicographic and chronological order coincide.
type RateObservation struct {
	HotelID         string    `json:"hotel_id"`
	HotelName       string    `json:"hotel_name"`
	City            string    `json:"city"`
	CityType        CityType  `json:"city_type"`
	Segment         Segment   `json:"segment"`
	Proximity       Proximity `json:"proximity"`
	CheckIn         string    `json:"check_in_date"`
	CheckOut        string    `json:"check_out_date"`
	Rate            float64   `json:"rate"` // 0 means no data
	Currency        string    `json:"currency"`
	Availability    string    `json:"availability_status"`
	ScrapeDate      string    `json:"scrape_date"`
	ScrapeTimestamp string    `json:"scrape_timestamp,omitempty"`
	DaysToEvent     *int      `json:"days_to_event,omitempty"`
}

// HasRate reports whether the observation carries usable rate data.
// Zero or negative rates are excluded from every rate-based aggregate.
func (o *RateObservation) HasRate() bool {
	return o.Rate > 0
}

// ScrapeBatch is one collection pass: a scrape date plus the observations
// gathered at that time
type ScrapeBatch struct {
	ScrapeDate string            `json:"scrape_date"`
	Results    []RateObservation `json:"results"`
}
