package services

import (
	"log"
	"sync"
	"time"

	"pitchprice/analytics"
	"pitchprice/dataset"
	"pitchprice/models"
	"pitchprice/venue"
)

// ExclusionStore persists the excluded-hotel set across restarts
type ExclusionStore interface {
	ExcludedHotels() ([]string, error)
	SetExcluded(hotelID string, excluded bool) error
}

// Dashboard owns the resolved venue model, the current observation
// snapshot, and the excluded-hotel set. Every view recomputes wholesale
// from the current snapshot; the RWMutex covers concurrent HTTP readers
// against the refresh scheduler swapping snapshots.
type Dashboard struct {
	mu          sync.RWMutex
	event       models.Event
	cities      []models.City
	hotels      []models.Hotel
	eventDates  map[string][]string
	controlCity string
	staleAfter  time.Duration

	store    *dataset.Store
	excluded map[string]bool
	ops      ExclusionStore
}

// NewDashboard builds the service from a resolved venue model. An empty
// controlCity falls back to the first control-typed city in config order.
func NewDashboard(event models.Event, cities []models.City, controlCity string, staleAfter time.Duration) *Dashboard {
	if controlCity == "" {
		for _, city := range cities {
			if city.Type == models.CityTypeControl {
				controlCity = city.Name
				break
			}
		}
	}

	return &Dashboard{
		event:       event,
		cities:      cities,
		hotels:      venue.FlattenHotels(cities),
		eventDates:  venue.EventDatesByCity(cities),
		controlCity: controlCity,
		staleAfter:  staleAfter,
		store:       dataset.Empty(time.Now()),
		excluded:    make(map[string]bool),
	}
}

// SetExclusionStore wires persistence for the excluded-hotel set and
// restores the persisted state.
func (d *Dashboard) SetExclusionStore(ops ExclusionStore) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = ops

	ids, err := ops.ExcludedHotels()
	if err != nil {
		log.Printf("Dashboard: could not restore exclusions: %v", err)
		return
	}
	for _, id := range ids {
		d.excluded[id] = true
	}
}

// SetStore swaps in a new immutable snapshot
func (d *Dashboard) SetStore(store *dataset.Store) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.store = store
}

func (d *Dashboard) Event() models.Event { return d.event }

func (d *Dashboard) Cities() []models.City { return d.cities }

func (d *Dashboard) Hotels() []models.Hotel { return d.hotels }

func (d *Dashboard) ControlCity() string { return d.controlCity }

// Summary computes headline statistics for the filtered set
func (d *Dashboard) Summary(c models.FilterCriteria) models.RateSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return analytics.Summarize(analytics.Filter(d.store.Observations, c))
}

// RateEvolution builds the per-hotel time-series view. This is the only
// view the excluded-hotel set touches.
func (d *Dashboard) RateEvolution(c models.FilterCriteria) models.RateEvolution {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return analytics.BuildRateEvolution(analytics.Filter(d.store.Observations, c), d.hotels, d.excluded)
}

// Segments builds the latest-rate-per-hotel comparison grouped by segment
func (d *Dashboard) Segments(c models.FilterCriteria) []models.SegmentGroup {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return analytics.CompareSegments(
		analytics.Filter(d.store.Observations, c),
		analytics.FilterHotels(d.hotels, c),
	)
}

// LeadTime builds indexed lead-time curves over the unfiltered set
func (d *Dashboard) LeadTime() []models.LeadTimeCurve {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return analytics.BuildLeadTimeCurves(d.store.Observations)
}

// Premiums computes control-city premiums over the unfiltered set
func (d *Dashboard) Premiums() []models.SegmentPremium {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return analytics.ComputePremiums(d.store.Observations, d.controlCity)
}

// Availability builds the hotel x event-date status grid
func (d *Dashboard) Availability(c models.FilterCriteria) models.AvailabilityGrid {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return analytics.BuildAvailabilityGrid(
		analytics.Filter(d.store.Observations, c),
		analytics.FilterHotels(d.hotels, c),
		d.eventDates,
	)
}

// Freshness reports how current the active snapshot is
func (d *Dashboard) Freshness() dataset.Freshness {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.store.Freshness(time.Now(), d.staleAfter)
}

// Health reports observation quality for the active snapshot
func (d *Dashboard) Health() dataset.HealthReport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.store.Health()
}

// Version returns the active snapshot's fingerprint
func (d *Dashboard) Version() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.store.Version
}

// ToggleExclusion flips one hotel in or out of the rate-evolution view and
// returns the new state. Summary statistics and every other view are
// unaffected by this set.
func (d *Dashboard) ToggleExclusion(hotelID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	excluded := !d.excluded[hotelID]
	if excluded {
		d.excluded[hotelID] = true
	} else {
		delete(d.excluded, hotelID)
	}

	if d.ops != nil {
		if err := d.ops.SetExcluded(hotelID, excluded); err != nil {
			log.Printf("Dashboard: could not persist exclusion for %s: %v", hotelID, err)
		}
	}
	return excluded
}

// Exclusions lists the currently excluded hotel ids
func (d *Dashboard) Exclusions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.excluded))
	for _, h := range d.hotels {
		if d.excluded[h.ID] {
			ids = append(ids, h.ID)
		}
	}
	return ids
}
