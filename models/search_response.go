// models/search_response.go
package models

// Places API response statuses that carry usable (possibly empty) results.
const STATUS_OK = "OK"
const STATUS_ZERO_RESULTS = "ZERO_RESULTS"

// Geometry matches the "geometry" block of a Places API result.
type Geometry struct {
	Location *Coordinates `json:"location,omitempty"`
}

// PlaceResult is a single entry of "results" in text and nearby search responses.
type PlaceResult struct {
	PlaceID          string    `json:"place_id,omitempty"`
	Name             string    `json:"name,omitempty"`
	FormattedAddress string    `json:"formatted_address,omitempty"`
	Vicinity         string    `json:"vicinity,omitempty"`
	Geometry         *Geometry `json:"geometry,omitempty"`
	Types            []string  `json:"types,omitempty"`
	Rating           float64   `json:"rating,omitempty"`
}

// SearchResponse is the top-level JSON returned by /textsearch/json and /nearbysearch/json.
type SearchResponse struct {
	Results       []PlaceResult `json:"results"`
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

// TextSearchResponse and NearbySearchResponse share the same wire shape.
type TextSearchResponse = SearchResponse
type NearbySearchResponse = SearchResponse
