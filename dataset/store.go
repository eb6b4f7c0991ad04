package dataset

import (
	"encoding/json"
	"fmt"
	"time"

	"pitchprice/models"
)

// DefaultStaleAfter is how old the data may get before the dashboard flags
// it as stale.
const DefaultStaleAfter = 168 * time.Hour

// Store is one immutable snapshot of the flattened observation set. A
// refresh builds a whole new Store and swaps it in; nothing mutates an
// existing snapshot.
type Store struct {
	Observations []models.RateObservation
	Batches      int
	Version      string
	LoadedAt     time.Time

	lastUpdated time.Time
}

// Freshness describes how current a snapshot is
type Freshness struct {
	HasData     bool      `json:"has_data"`
	LastUpdated time.Time `json:"last_updated"`
	Stale       bool      `json:"stale"`
}

// HealthReport summarizes the quality of a snapshot's observations
type HealthReport struct {
	Batches      int            `json:"batches"`
	Observations int            `json:"observations"`
	RateBearing  int            `json:"rate_bearing"`
	Errors       int            `json:"errors"`
	ByStatus     map[string]int `json:"by_status"`
}

type rawObservation struct {
	HotelID         string   `json:"hotel_id"`
	HotelName       string   `json:"hotel_name"`
	City            string   `json:"city"`
	CityType        string   `json:"city_type"`
	Segment         string   `json:"segment"`
	Proximity       string   `json:"proximity"`
	VenueProximity  string   `json:"venue_proximity"`
	CheckIn         string   `json:"check_in_date"`
	CheckOut        string   `json:"check_out_date"`
	Rate            *float64 `json:"rate"`
	Currency        string   `json:"currency"`
	Availability    string   `json:"availability_status"`
	ScrapeTimestamp string   `json:"scrape_timestamp"`
	DaysToEvent     *int     `json:"days_to_event"`
}

type rawAggregated struct {
	LastUpdated  string     `json:"last_updated"`
	TotalScrapes int        `json:"total_scrapes"`
	Scrapes      []rawBatch `json:"scrapes"`
}

type rawBatch struct {
	ScrapeDate string           `json:"scrape_date"`
	Results    []rawObservation `json:"results"`
}

type rawLatest struct {
	ScrapeMetadata struct {
		Timestamp string `json:"timestamp"`
	} `json:"scrape_metadata"`
	Results []rawObservation `json:"results"`
}

// ParseAggregated decodes an aggregated document into ordered scrape
// batches plus the document-level declared timestamp.
func ParseAggregated(data []byte) ([]models.ScrapeBatch, time.Time, error) {
	var doc rawAggregated
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("parse aggregated document: %w", err)
	}

	batches := make([]models.ScrapeBatch, 0, len(doc.Scrapes))
	for _, b := range doc.Scrapes {
		batches = append(batches, normalizeBatch(b.ScrapeDate, b.Results))
	}
	return batches, parseTimestamp(doc.LastUpdated), nil
}

// ParseLatest decodes a single-scrape document into one synthetic batch
// dated today.
func ParseLatest(data []byte, today string) (models.ScrapeBatch, time.Time, error) {
	var doc rawLatest
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.ScrapeBatch{}, time.Time{}, fmt.Errorf("parse latest document: %w", err)
	}
	return normalizeBatch(today, doc.Results), parseTimestamp(doc.ScrapeMetadata.Timestamp), nil
}

func normalizeBatch(scrapeDate string, results []rawObservation) models.ScrapeBatch {
	batch := models.ScrapeBatch{
		ScrapeDate: scrapeDate,
		Results:    make([]models.RateObservation, 0, len(results)),
	}
	for _, r := range results {
		batch.Results = append(batch.Results, normalizeObservation(r, scrapeDate))
	}
	return batch
}

// normalizeObservation resolves the legacy/new field split once, at the
// boundary. Downstream code never branches on schema version.
func normalizeObservation(r rawObservation, scrapeDate string) models.RateObservation {
	proximity := r.VenueProximity
	if proximity == "" {
		proximity = r.Proximity
	}
	cityType := models.CityType(r.CityType)
	if cityType == "" {
		cityType = models.CityTypeEventHost
	}
	availability := r.Availability
	if availability == "" {
		availability = models.AvailabilityUnknown
	}
	var rate float64
	if r.Rate != nil {
		rate = *r.Rate
	}

	return models.RateObservation{
		HotelID:         r.HotelID,
		HotelName:       r.HotelName,
		City:            r.City,
		CityType:        cityType,
		Segment:         models.Segment(r.Segment),
		Proximity:       models.Proximity(proximity),
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
		Rate:            rate,
		Currency:        r.Currency,
		Availability:    availability,
		ScrapeDate:      scrapeDate,
		ScrapeTimestamp: r.ScrapeTimestamp,
		DaysToEvent:     r.DaysToEvent,
	}
}

// Build flattens batches into one snapshot. The snapshot's last-updated
// instant is the later of the declared document timestamp and the maximum
// per-observation scrape timestamp.
func Build(batches []models.ScrapeBatch, declared time.Time, version string, loadedAt time.Time) *Store {
	store := &Store{
		Batches:     len(batches),
		Version:     version,
		LoadedAt:    loadedAt,
		lastUpdated: declared,
	}

	total := 0
	for _, b := range batches {
		total += len(b.Results)
	}
	store.Observations = make([]models.RateObservation, 0, total)

	for _, b := range batches {
		for _, o := range b.Results {
			if o.ScrapeDate == "" {
				o.ScrapeDate = b.ScrapeDate
			}
			if ts := parseTimestamp(o.ScrapeTimestamp); ts.After(store.lastUpdated) {
				store.lastUpdated = ts
			}
			store.Observations = append(store.Observations, o)
		}
	}

	return store
}

// Empty returns a snapshot with no observations, used when no document
// could be fetched. Non-fatal by contract: the dashboard renders with
// freshness reported as "no data".
func Empty(loadedAt time.Time) *Store {
	return &Store{Version: "empty", LoadedAt: loadedAt}
}

// Freshness evaluates the snapshot's age against the staleness threshold
func (s *Store) Freshness(now time.Time, staleAfter time.Duration) Freshness {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	f := Freshness{
		HasData:     len(s.Observations) > 0,
		LastUpdated: s.lastUpdated,
	}
	if f.HasData && !s.lastUpdated.IsZero() && now.Sub(s.lastUpdated) > staleAfter {
		f.Stale = true
	}
	return f
}

// Health tallies observation quality for the meta endpoint and load log
func (s *Store) Health() HealthReport {
	report := HealthReport{
		Batches:      s.Batches,
		Observations: len(s.Observations),
		ByStatus:     make(map[string]int),
	}
	for i := range s.Observations {
		o := &s.Observations[i]
		if o.HasRate() {
			report.RateBearing++
		}
		if o.Availability == models.AvailabilityError {
			report.Errors++
		}
		report.ByStatus[o.Availability]++
	}
	return report
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
