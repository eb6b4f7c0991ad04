package venue

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"pitchprice/models"
)

// ErrNoCities means the configuration document carries neither the nested
// events schema nor the legacy flat cities schema. Callers must treat this
// as fatal; the dashboard cannot render without a city roster.
var ErrNoCities = errors.New("no cities configured")

type rawConfig struct {
	Events map[string]rawEvent `json:"events"`
	Cities map[string]rawCity  `json:"cities"`
}

type rawEvent struct {
	Name      string             `json:"name"`
	EventType string             `json:"event_type"`
	Cities    map[string]rawCity `json:"cities"`
}

type rawCity struct {
	Name       string     `json:"name"`
	CityType   string     `json:"city_type"`
	EventDates []string   `json:"event_dates"`
	GameDates  []string   `json:"game_dates"` // legacy name for event_dates
	ControlFor string     `json:"control_for"`
	Hotels     []rawHotel `json:"hotels"`
}

type rawHotel struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Segment        string `json:"segment"`
	Proximity      string `json:"proximity"` // legacy name
	VenueProximity string `json:"venue_proximity"`
	Address        string `json:"address"`
	Notes          string `json:"notes"`
}

// Resolve parses a venue configuration document into the canonical
// Event/City/Hotel model. The nested events schema wins when present;
// the legacy flat schema is the fallback. Cities come out sorted by key
// so downstream ordering is stable across runs.
func Resolve(data []byte, eventID string) (models.Event, []models.City, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Event{}, nil, fmt.Errorf("parse venue config: %w", err)
	}

	event := models.Event{ID: eventID, Name: "Unknown Event", Type: "unknown"}

	var cities map[string]rawCity
	if ev, ok := raw.Events[eventID]; ok {
		event.Name = ev.Name
		if ev.EventType != "" {
			event.Type = ev.EventType
		}
		cities = ev.Cities
	} else if raw.Cities != nil {
		cities = raw.Cities
	}

	if len(cities) == 0 {
		return models.Event{}, nil, ErrNoCities
	}

	keys := make([]string, 0, len(cities))
	for key := range cities {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resolved := make([]models.City, 0, len(keys))
	for _, key := range keys {
		resolved = append(resolved, resolveCity(key, cities[key]))
	}

	return event, resolved, nil
}

func resolveCity(key string, raw rawCity) models.City {
	city := models.City{
		Key:        key,
		Name:       raw.Name,
		Type:       models.CityType(raw.CityType),
		EventDates: raw.EventDates,
	}
	if city.Name == "" {
		city.Name = key
	}
	if city.Type == "" {
		city.Type = models.CityTypeEventHost
	}
	if len(city.EventDates) == 0 {
		city.EventDates = raw.GameDates
	}
	sort.Strings(city.EventDates)

	city.Hotels = make([]models.Hotel, 0, len(raw.Hotels))
	for _, h := range raw.Hotels {
		proximity := h.VenueProximity
		if proximity == "" {
			proximity = h.Proximity
		}
		if proximity == "" {
			proximity = string(models.ProximityMedium)
		}
		city.Hotels = append(city.Hotels, models.Hotel{
			ID:        h.ID,
			Name:      h.Name,
			City:      city.Name,
			CityType:  city.Type,
			Segment:   models.Segment(h.Segment),
			Proximity: models.Proximity(proximity),
			Address:   h.Address,
			Notes:     h.Notes,
		})
	}

	return city
}

// FlattenHotels returns every hotel across all cities in city order
func FlattenHotels(cities []models.City) []models.Hotel {
	var hotels []models.Hotel
	for _, city := range cities {
		hotels = append(hotels, city.Hotels...)
	}
	return hotels
}

// EventDatesByCity maps city display names to their event dates
func EventDatesByCity(cities []models.City) map[string][]string {
	dates := make(map[string][]string, len(cities))
	for _, city := range cities {
		dates[city.Name] = city.EventDates
	}
	return dates
}

// DaysToEvent returns the signed day count from check-in to the nearest
// event date, and that date. ok is false when no event dates exist or the
// check-in date does not parse.
func DaysToEvent(checkIn string, eventDates []string) (days int, nearest string, ok bool) {
	if len(eventDates) == 0 {
		return 0, "", false
	}
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0, "", false
	}

	best := math.MaxInt
	for _, date := range eventDates {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		delta := int(d.Sub(in).Hours() / 24)
		if abs(delta) < abs(best) {
			best = delta
			nearest = date
		}
	}
	if nearest == "" {
		return 0, "", false
	}
	return best, nearest, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
