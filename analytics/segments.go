package analytics

import "pitchprice/models"

// CompareSegments picks each hotel's latest rate-bearing observation
// (latest wins by lexicographic scrape-date compare; equal dates go to the
// last row in input order) and groups hotels by segment in fixed display
// order. Hotels with no rate-bearing observation contribute a zero rate.
func CompareSegments(obs []models.RateObservation, hotels []models.Hotel) []models.SegmentGroup {
	latest := make(map[string]*models.RateObservation)
	for i := range obs {
		o := &obs[i]
		if !o.HasRate() {
			continue
		}
		if cur, ok := latest[o.HotelID]; !ok || o.ScrapeDate >= cur.ScrapeDate {
			latest[o.HotelID] = o
		}
	}

	groups := make([]models.SegmentGroup, len(models.SegmentOrder))
	index := make(map[models.Segment]int, len(models.SegmentOrder))
	for i, segment := range models.SegmentOrder {
		groups[i].Segment = segment
		index[segment] = i
	}

	for _, h := range hotels {
		i, ok := index[h.Segment]
		if !ok {
			continue
		}
		rate := models.SegmentRate{
			HotelID:   h.ID,
			HotelName: h.Name,
			City:      h.City,
		}
		if o := latest[h.ID]; o != nil {
			rate.Rate = o.Rate
			rate.ScrapeDate = o.ScrapeDate
		}
		groups[i].Hotels = append(groups[i].Hotels, rate)
	}

	return groups
}
