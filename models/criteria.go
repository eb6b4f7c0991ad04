package models

// FilterAll is the sentinel matching every value on a filter axis
const FilterAll = "all"

// FilterCriteria is the user-selected slice of the dataset. Unknown values
// are not validated; they simply match nothing.
type FilterCriteria struct {
	City      string   `json:"city"`
	CityType  string   `json:"city_type"`
	Segment   string   `json:"segment"`
	Proximity string   `json:"proximity"`
	Dates     []string `json:"dates"` // accepted check-in dates; empty means unconstrained
}

// AllCriteria returns criteria that match every observation
func AllCriteria() FilterCriteria {
	return FilterCriteria{
		City:      FilterAll,
		CityType:  FilterAll,
		Segment:   FilterAll,
		Proximity: FilterAll,
	}
}

// Unconstrained reports whether every axis carries the "all" sentinel
func (c FilterCriteria) Unconstrained() bool {
	return (c.City == "" || c.City == FilterAll) &&
		(c.CityType == "" || c.CityType == FilterAll) &&
		(c.Segment == "" || c.Segment == FilterAll) &&
		(c.Proximity == "" || c.Proximity == FilterAll) &&
		len(c.Dates) == 0
}
