package analytics

import (
	"testing"

	"pitchprice/models"
)

func TestFilter_UnconstrainedIsIdentity(t *testing.T) {
	in := []models.RateObservation{
		obs("a", "Vancouver", "2026-03-01", "2026-06-13", 120),
		obs("b", "Toronto", "2026-03-01", "2026-06-12", 80),
	}

	out := Filter(in, models.AllCriteria())
	if len(out) != 2 {
		t.Fatalf("expected all observations, got %d", len(out))
	}
	// identity, not a copy
	if &out[0] != &in[0] {
		t.Fatal("unconstrained filter should return the input slice")
	}
}

func TestFilter_CityCaseInsensitive(t *testing.T) {
	in := []models.RateObservation{
		obs("a", "Vancouver", "2026-03-01", "2026-06-13", 120),
		obs("b", "Toronto", "2026-03-01", "2026-06-12", 80),
	}

	c := models.AllCriteria()
	c.City = "vancouver"
	out := Filter(in, c)
	if len(out) != 1 || out[0].HotelID != "a" {
		t.Fatalf("expected only vancouver observation, got %d", len(out))
	}
}

func TestFilter_AxesAndConjunction(t *testing.T) {
	a := obs("a", "Vancouver", "2026-03-01", "2026-06-13", 120)
	b := obs("b", "Vancouver", "2026-03-01", "2026-06-13", 80)
	b.Segment = models.SegmentEconomy
	b.Proximity = models.ProximityFar
	in := []models.RateObservation{a, b}

	c := models.AllCriteria()
	c.Segment = "luxury"
	out := Filter(in, c)
	if len(out) != 1 || out[0].HotelID != "a" {
		t.Fatalf("segment axis failed: got %d", len(out))
	}

	// axes are ANDed
	c.Proximity = "far"
	if out := Filter(in, c); len(out) != 0 {
		t.Fatalf("expected no match for luxury+far, got %d", len(out))
	}
}

func TestFilter_MissingCityTypeMatchesEventHost(t *testing.T) {
	a := obs("a", "Vancouver", "2026-03-01", "2026-06-13", 120)
	a.CityType = ""
	in := []models.RateObservation{a}

	c := models.AllCriteria()
	c.CityType = string(models.CityTypeEventHost)
	if out := Filter(in, c); len(out) != 1 {
		t.Fatalf("missing city_type should count as event_host, got %d", len(out))
	}
}

func TestFilter_DateSet(t *testing.T) {
	in := []models.RateObservation{
		obs("a", "Vancouver", "2026-03-01", "2026-06-13", 120),
		obs("a", "Vancouver", "2026-03-01", "2026-06-18", 130),
		obs("a", "Vancouver", "2026-03-01", "2026-06-21", 140),
	}

	c := models.AllCriteria()
	c.Dates = []string{"2026-06-13", "2026-06-21"}
	out := Filter(in, c)
	if len(out) != 2 {
		t.Fatalf("expected 2 date matches, got %d", len(out))
	}
	// input order preserved
	if out[0].CheckIn != "2026-06-13" || out[1].CheckIn != "2026-06-21" {
		t.Fatalf("order not preserved: %s, %s", out[0].CheckIn, out[1].CheckIn)
	}
}

func TestFilterHotels_IgnoresDateAxis(t *testing.T) {
	hotels := []models.Hotel{
		hotel("a", "Vancouver", models.SegmentLuxury),
		hotel("b", "Toronto", models.SegmentEconomy),
	}

	c := models.AllCriteria()
	c.Dates = []string{"2026-06-13"}
	if out := FilterHotels(hotels, c); len(out) != 2 {
		t.Fatalf("date axis must not constrain hotels, got %d", len(out))
	}

	c.City = "Toronto"
	out := FilterHotels(hotels, c)
	if len(out) != 1 || out[0].ID != "b" {
		t.Fatalf("city axis failed for hotels: got %d", len(out))
	}
}
