package analytics

import (
	"testing"

	"pitchprice/models"
)

func TestBuildAvailabilityGrid(t *testing.T) {
	soldOut := obs("hotel_a", "Vancouver", "2026-03-02", "2026-06-18", 0)
	soldOut.Availability = models.AvailabilitySoldOut

	in := []models.RateObservation{
		obs("hotel_a", "Vancouver", "2026-03-01", "2026-06-13", 120),
		obs("hotel_a", "Vancouver", "2026-03-02", "2026-06-13", 130),
		soldOut,
	}
	hotels := []models.Hotel{hotel("hotel_a", "Vancouver", models.SegmentLuxury)}
	eventDates := map[string][]string{
		"Vancouver": {"2026-06-13", "2026-06-18", "2026-06-21"},
	}

	grid := BuildAvailabilityGrid(in, hotels, eventDates)
	if len(grid.Dates) != 3 {
		t.Fatalf("expected 3 grid dates, got %d", len(grid.Dates))
	}
	if len(grid.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(grid.Rows))
	}

	row := grid.Rows[0]
	if len(row.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(row.Cells))
	}

	// latest-wins for the 06-13 cell
	first := row.Cells[0]
	if first.Status != models.AvailabilityAvailable || first.Rate != 130 || !first.HasRate {
		t.Fatalf("unexpected first cell: %+v", first)
	}

	// sold-out cell carries status but no rate
	second := row.Cells[1]
	if second.Status != models.AvailabilitySoldOut || second.HasRate {
		t.Fatalf("unexpected sold-out cell: %+v", second)
	}

	// no observation at all defaults to unknown
	third := row.Cells[2]
	if third.Status != models.AvailabilityUnknown || third.HasRate {
		t.Fatalf("unexpected default cell: %+v", third)
	}

	// current rate is the latest rate-bearing observation across dates
	if row.Current == nil || row.Current.Rate != 130 || row.Current.ScrapeDate != "2026-03-02" {
		t.Fatalf("unexpected current point: %+v", row.Current)
	}
}

func TestBuildAvailabilityGrid_DatesUnionFilteredCitiesOnly(t *testing.T) {
	hotels := []models.Hotel{hotel("hotel_a", "Vancouver", models.SegmentLuxury)}
	eventDates := map[string][]string{
		"Vancouver": {"2026-06-13"},
		"Toronto":   {"2026-06-12"},
	}

	grid := BuildAvailabilityGrid(nil, hotels, eventDates)
	if len(grid.Dates) != 1 || grid.Dates[0] != "2026-06-13" {
		t.Fatalf("columns must come from the filtered hotels' cities: %v", grid.Dates)
	}
}

func TestBuildAvailabilityGrid_NoObservations(t *testing.T) {
	hotels := []models.Hotel{hotel("hotel_a", "Vancouver", models.SegmentLuxury)}
	eventDates := map[string][]string{"Vancouver": {"2026-06-13"}}

	grid := BuildAvailabilityGrid(nil, hotels, eventDates)
	row := grid.Rows[0]
	if row.Cells[0].Status != models.AvailabilityUnknown {
		t.Fatalf("expected unknown cell, got %+v", row.Cells[0])
	}
	if row.Current != nil {
		t.Fatalf("expected no current point, got %+v", row.Current)
	}
}
