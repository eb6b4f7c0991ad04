package analytics

import (
	"sort"

	"pitchprice/models"
)

// BuildAvailabilityGrid resolves each (hotel, event date) cell to the
// latest-wins observation for that hotel and check-in date. Cells with no
// matching observation default to status "unknown" with no rate. Grid
// columns are the sorted union of event dates across the filtered hotels'
// cities. Each row also carries the hotel's single latest rate-bearing
// observation across all dates, for the trailing current-rate column.
func BuildAvailabilityGrid(obs []models.RateObservation, hotels []models.Hotel, eventDates map[string][]string) models.AvailabilityGrid {
	dateSet := make(map[string]bool)
	for _, h := range hotels {
		for _, d := range eventDates[h.City] {
			dateSet[d] = true
		}
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	type cellKey struct {
		hotelID string
		checkIn string
	}
	cells := make(map[cellKey]*models.RateObservation)
	current := make(map[string]*models.RateObservation)

	for i := range obs {
		o := &obs[i]
		key := cellKey{hotelID: o.HotelID, checkIn: o.CheckIn}
		if cur, ok := cells[key]; !ok || o.ScrapeDate >= cur.ScrapeDate {
			cells[key] = o
		}
		if !o.HasRate() {
			continue
		}
		if cur, ok := current[o.HotelID]; !ok || o.ScrapeDate >= cur.ScrapeDate {
			current[o.HotelID] = o
		}
	}

	grid := models.AvailabilityGrid{Dates: dates}
	for _, h := range hotels {
		row := models.AvailabilityRow{
			HotelID:   h.ID,
			HotelName: h.Name,
			City:      h.City,
			Cells:     make([]models.AvailabilityCell, 0, len(dates)),
		}
		for _, date := range dates {
			cell := models.AvailabilityCell{
				Date:   date,
				Status: models.AvailabilityUnknown,
			}
			if o := cells[cellKey{hotelID: h.ID, checkIn: date}]; o != nil {
				cell.Status = o.Availability
				if o.HasRate() {
					cell.Rate = o.Rate
					cell.HasRate = true
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		if o := current[h.ID]; o != nil {
			row.Current = &models.SeriesPoint{ScrapeDate: o.ScrapeDate, Rate: o.Rate}
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}
