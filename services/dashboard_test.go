package services

import (
	"testing"
	"time"

	"pitchprice/dataset"
	"pitchprice/models"
)

func testCities() []models.City {
	return []models.City{
		{
			Key:        "calgary",
			Name:       "Calgary",
			Type:       models.CityTypeControl,
			Hotels: []models.Hotel{
				{ID: "cal_lux", Name: "Fairmont Palliser", City: "Calgary", CityType: models.CityTypeControl, Segment: models.SegmentLuxury, Proximity: models.ProximityFar},
			},
		},
		{
			Key:        "vancouver",
			Name:       "Vancouver",
			Type:       models.CityTypeEventHost,
			EventDates: []string{"2026-06-13", "2026-06-18"},
			Hotels: []models.Hotel{
				{ID: "van_lux", Name: "Fairmont Pacific Rim", City: "Vancouver", CityType: models.CityTypeEventHost, Segment: models.SegmentLuxury, Proximity: models.ProximityNear},
				{ID: "van_mid", Name: "Sandman City Centre", City: "Vancouver", CityType: models.CityTypeEventHost, Segment: models.SegmentMidscale, Proximity: models.ProximityMedium},
			},
		},
	}
}

func testStore() *dataset.Store {
	batch := models.ScrapeBatch{
		ScrapeDate: "2026-03-01",
		Results: []models.RateObservation{
			{HotelID: "van_lux", HotelName: "Fairmont Pacific Rim", City: "Vancouver", CityType: models.CityTypeEventHost, Segment: models.SegmentLuxury, CheckIn: "2026-06-13", Rate: 250, Availability: models.AvailabilityAvailable, ScrapeDate: "2026-03-01"},
			{HotelID: "van_mid", HotelName: "Sandman City Centre", City: "Vancouver", CityType: models.CityTypeEventHost, Segment: models.SegmentMidscale, CheckIn: "2026-06-13", Rate: 150, Availability: models.AvailabilityAvailable, ScrapeDate: "2026-03-01"},
			{HotelID: "cal_lux", HotelName: "Fairmont Palliser", City: "Calgary", CityType: models.CityTypeControl, Segment: models.SegmentLuxury, CheckIn: "2026-06-13", Rate: 200, Availability: models.AvailabilityAvailable, ScrapeDate: "2026-03-01"},
		},
	}
	return dataset.Build([]models.ScrapeBatch{batch}, time.Now(), "v1", time.Now())
}

type memExclusions struct {
	excluded map[string]bool
}

func (m *memExclusions) ExcludedHotels() ([]string, error) {
	var ids []string
	for id := range m.excluded {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memExclusions) SetExcluded(hotelID string, excluded bool) error {
	if excluded {
		m.excluded[hotelID] = true
	} else {
		delete(m.excluded, hotelID)
	}
	return nil
}

func newTestDashboard() *Dashboard {
	d := NewDashboard(models.Event{ID: "fifa_2026", Name: "FIFA World Cup 2026"}, testCities(), "", dataset.DefaultStaleAfter)
	d.SetStore(testStore())
	return d
}

func TestNewDashboard_ControlCityFallback(t *testing.T) {
	d := newTestDashboard()
	if d.ControlCity() != "Calgary" {
		t.Fatalf("expected first control-typed city, got %q", d.ControlCity())
	}
}

func TestDashboard_Summary(t *testing.T) {
	d := newTestDashboard()

	s := d.Summary(models.AllCriteria())
	if s.AvgRate != 200 || s.HotelCount != 3 {
		t.Fatalf("unexpected summary: %+v", s)
	}

	c := models.AllCriteria()
	c.City = "Vancouver"
	s = d.Summary(c)
	if s.AvgRate != 200 || s.HotelCount != 2 {
		t.Fatalf("unexpected filtered summary: %+v", s)
	}
	if s.Min == nil || s.Min.HotelID != "van_mid" {
		t.Fatalf("unexpected min: %+v", s.Min)
	}
}

func TestDashboard_ExclusionOnlyAffectsEvolution(t *testing.T) {
	d := newTestDashboard()

	before := d.Summary(models.AllCriteria())
	if excluded := d.ToggleExclusion("van_lux"); !excluded {
		t.Fatal("expected toggle to exclude")
	}

	ev := d.RateEvolution(models.AllCriteria())
	for _, s := range ev.Series {
		if s.HotelID == "van_lux" {
			t.Fatal("excluded hotel still has a series")
		}
	}

	after := d.Summary(models.AllCriteria())
	if before.AvgRate != after.AvgRate || before.HotelCount != after.HotelCount {
		t.Fatalf("exclusion leaked into summary: %+v vs %+v", before, after)
	}

	if excluded := d.ToggleExclusion("van_lux"); excluded {
		t.Fatal("expected second toggle to re-include")
	}
	ev = d.RateEvolution(models.AllCriteria())
	if len(ev.Series) != 3 {
		t.Fatalf("expected all series restored, got %d", len(ev.Series))
	}
}

func TestDashboard_ExclusionPersistence(t *testing.T) {
	mem := &memExclusions{excluded: map[string]bool{"van_mid": true}}

	d := newTestDashboard()
	d.SetExclusionStore(mem)

	ids := d.Exclusions()
	if len(ids) != 1 || ids[0] != "van_mid" {
		t.Fatalf("persisted exclusions not restored: %v", ids)
	}

	d.ToggleExclusion("van_lux")
	if !mem.excluded["van_lux"] {
		t.Fatal("toggle not persisted")
	}
	d.ToggleExclusion("van_mid")
	if mem.excluded["van_mid"] {
		t.Fatal("re-inclusion not persisted")
	}
}

func TestDashboard_SnapshotSwap(t *testing.T) {
	d := newTestDashboard()
	if d.Version() != "v1" {
		t.Fatalf("unexpected version %q", d.Version())
	}

	batch := models.ScrapeBatch{
		ScrapeDate: "2026-03-02",
		Results: []models.RateObservation{
			{HotelID: "van_lux", City: "Vancouver", Segment: models.SegmentLuxury, CheckIn: "2026-06-13", Rate: 300, Availability: models.AvailabilityAvailable, ScrapeDate: "2026-03-02"},
		},
	}
	d.SetStore(dataset.Build([]models.ScrapeBatch{batch}, time.Now(), "v2", time.Now()))

	if d.Version() != "v2" {
		t.Fatalf("snapshot not swapped, version %q", d.Version())
	}
	s := d.Summary(models.AllCriteria())
	if s.AvgRate != 300 {
		t.Fatalf("summary still on old snapshot: %+v", s)
	}
}

func TestDashboard_Availability(t *testing.T) {
	d := newTestDashboard()

	c := models.AllCriteria()
	c.City = "Vancouver"
	grid := d.Availability(c)
	if len(grid.Dates) != 2 {
		t.Fatalf("expected vancouver's 2 event dates, got %v", grid.Dates)
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("expected 2 hotel rows, got %d", len(grid.Rows))
	}
}

func TestDashboard_Premiums(t *testing.T) {
	d := newTestDashboard()

	premiums := d.Premiums()
	if len(premiums) != 1 {
		t.Fatalf("expected 1 premium, got %d", len(premiums))
	}
	if premiums[0].Premium != 50 {
		t.Fatalf("expected premium 50, got %v", premiums[0].Premium)
	}
}
