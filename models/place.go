package models

const UNKNOWN_NAME = "Unknown"
const UNKNOWN_ADDRESS = "N/A"

// Place is one nearby-search record tagged with the category it was fetched for.
type Place struct {
	PlaceID  string       `json:"place_id,omitempty"`
	Name     string       `json:"name"`
	Vicinity string       `json:"vicinity"`
	Location *Coordinates `json:"location,omitempty"`
	Category string       `json:"category"`
}

// CityCandidate is one text-search hit the user can commit as the search center.
type CityCandidate struct {
	Description string      `json:"description"`
	Location    Coordinates `json:"location"`
}

// PlaceFromResult projects a nearby-search result, defaulting missing fields.
func PlaceFromResult(r PlaceResult, category string) Place {
	p := Place{
		PlaceID:  r.PlaceID,
		Name:     r.Name,
		Vicinity: r.Vicinity,
		Category: category,
	}
	if p.Name == "" {
		p.Name = UNKNOWN_NAME
	}
	if p.Vicinity == "" {
		p.Vicinity = UNKNOWN_ADDRESS
	}
	if r.Geometry != nil && r.Geometry.Location != nil {
		loc := *r.Geometry.Location
		p.Location = &loc
	}
	return p
}

// CandidateFromResult projects a text-search result. The description prefers the
// formatted address and falls back to the name.
func CandidateFromResult(r PlaceResult) CityCandidate {
	desc := r.FormattedAddress
	if desc == "" {
		desc = r.Name
	}
	if desc == "" {
		desc = UNKNOWN_NAME
	}
	c := CityCandidate{Description: desc}
	if r.Geometry != nil && r.Geometry.Location != nil {
		c.Location = *r.Geometry.Location
	}
	return c
}
