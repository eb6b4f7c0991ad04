package models

// Segment bands a hotel by market positioning
type Segment string

const (
	SegmentLuxury   Segment = "luxury"
	SegmentUpscale  Segment = "upscale"
	SegmentMidscale Segment = "midscale"
	SegmentEconomy  Segment = "economy"
)

// SegmentOrder is the fixed display order for segment groupings
var SegmentOrder = []Segment{SegmentLuxury, SegmentUpscale, SegmentMidscale, SegmentEconomy}

// Proximity describes how close a hotel sits to the event venue
type Proximity string

const (
	ProximityNear   Proximity = "near"
	ProximityMedium Proximity = "medium"
	ProximityFar    Proximity = "far"
)

// CityType distinguishes cities hosting the event from pricing baselines
type CityType string

const (
	CityTypeEventHost CityType = "event_host"
	CityTypeControl   CityType = "control"
)

// Event is the tracked event; one is active per deployment
type Event struct {
	ID   string `json:"event_id"`
	Name string `json:"name"`
	Type string `json:"event_type"`
}

// City owns event dates (empty for control cities) and its hotel roster
type City struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Type       CityType `json:"city_type"`
	EventDates []string `json:"event_dates"` // ISO dates, ascending
	Hotels     []Hotel  `json:"hotels"`
}

// Hotel is the join key between configuration and observations.
// IDs are unique within the active event and stable across scrape batches.
type Hotel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	CityType  CityType  `json:"city_type"`
	Segment   Segment   `json:"segment"`
	Proximity Proximity `json:"proximity"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}
