package models

// Derived view shapes handed to the presentation layer. All are plain
// serializable structures with no behavior attached.

// RateSummary holds headline statistics for a filtered observation set.
// Min and Max are full records, not just values; ties go to the first
// minimal/maximal record in input order.
type RateSummary struct {
	AvgRate    int              `json:"avg_rate"`
	HasRates   bool             `json:"has_rates"`
	Min        *RateObservation `json:"min,omitempty"`
	Max        *RateObservation `json:"max,omitempty"`
	HotelCount int              `json:"hotel_count"`
}

// SeriesPoint is one (scrape date, rate) sample
type SeriesPoint struct {
	ScrapeDate string  `json:"scrape_date"`
	Rate       float64 `json:"rate"`
}

// HotelSeries is one hotel's chronological rate series
type HotelSeries struct {
	HotelID   string        `json:"hotel_id"`
	HotelName string        `json:"hotel_name"`
	Points    []SeriesPoint `json:"points"`
}

// RateEvolution is the per-hotel time-series view. Labels is the sorted
// union of observed scrape dates, for axis labeling.
type RateEvolution struct {
	Labels []string      `json:"labels"`
	Series []HotelSeries `json:"series"`
}

// SegmentRate is a hotel's most recent rate within a segment group
type SegmentRate struct {
	HotelID    string  `json:"hotel_id"`
	HotelName  string  `json:"hotel_name"`
	City       string  `json:"city"`
	Rate       float64 `json:"rate"` // 0 when the hotel has no rate-bearing observation
	ScrapeDate string  `json:"scrape_date,omitempty"`
}

// SegmentGroup collects latest hotel rates for one market segment
type SegmentGroup struct {
	Segment Segment       `json:"segment"`
	Hotels  []SegmentRate `json:"hotels"`
}

// LeadTimePoint is the average indexed rate for one days-to-event bucket
type LeadTimePoint struct {
	DaysToEvent int     `json:"days_to_event"`
	AvgIndex    float64 `json:"avg_index"` // 100 = baseline
	Samples     int     `json:"samples"`
}

// LeadTimeCurve is one city's indexed lead-time curve, points ordered by
// descending days-to-event (far out first)
type LeadTimeCurve struct {
	City     string          `json:"city"`
	CityType CityType        `json:"city_type"`
	Points   []LeadTimePoint `json:"points"`
}

// SegmentPremium compares an event-host city/segment average against the
// control city's average for the same segment
type SegmentPremium struct {
	City       string  `json:"city"`
	Segment    Segment `json:"segment"`
	HostAvg    float64 `json:"host_avg"`
	ControlAvg float64 `json:"control_avg"`
	Premium    float64 `json:"premium"`
	PremiumPct float64 `json:"premium_pct"`
}

// AvailabilityCell is one hotel/event-date grid cell
type AvailabilityCell struct {
	Date    string  `json:"date"`
	Status  string  `json:"status"`
	Rate    float64 `json:"rate,omitempty"`
	HasRate bool    `json:"has_rate"`
}

// AvailabilityRow is one hotel's row across all grid dates. Current is the
// hotel's single latest rate-bearing observation across all its dates.
type AvailabilityRow struct {
	HotelID   string             `json:"hotel_id"`
	HotelName string             `json:"hotel_name"`
	City      string             `json:"city"`
	Cells     []AvailabilityCell `json:"cells"`
	Current   *SeriesPoint       `json:"current,omitempty"`
}

// AvailabilityGrid is the hotel x event-date status view
type AvailabilityGrid struct {
	Dates []string          `json:"dates"`
	Rows  []AvailabilityRow `json:"rows"`
}
