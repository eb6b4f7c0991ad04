package analytics

import (
	"sort"

	"pitchprice/models"
)

// BuildRateEvolution builds one chronological rate series per hotel.
// Series follow the hotel roster order; hotels in the excluded set or
// without rate-bearing observations get no series. Labels are the sorted
// union of scrape dates across all rate-bearing observations, excluded
// hotels included, so toggling one hotel never shifts the axis or any
// other hotel's points.
func BuildRateEvolution(obs []models.RateObservation, hotels []models.Hotel, excluded map[string]bool) models.RateEvolution {
	labelSet := make(map[string]bool)
	points := make(map[string][]models.SeriesPoint)

	for i := range obs {
		o := &obs[i]
		if !o.HasRate() {
			continue
		}
		labelSet[o.ScrapeDate] = true
		if excluded[o.HotelID] {
			continue
		}
		points[o.HotelID] = append(points[o.HotelID], models.SeriesPoint{
			ScrapeDate: o.ScrapeDate,
			Rate:       o.Rate,
		})
	}

	labels := make([]string, 0, len(labelSet))
	for date := range labelSet {
		labels = append(labels, date)
	}
	sort.Strings(labels)

	evolution := models.RateEvolution{Labels: labels}
	for _, h := range hotels {
		pts := points[h.ID]
		if len(pts) == 0 {
			continue
		}
		sort.SliceStable(pts, func(i, j int) bool {
			return pts[i].ScrapeDate < pts[j].ScrapeDate
		})
		evolution.Series = append(evolution.Series, models.HotelSeries{
			HotelID:   h.ID,
			HotelName: h.Name,
			Points:    pts,
		})
	}

	return evolution
}
