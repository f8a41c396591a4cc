package models

import "fmt"

// Coordinates is a WGS84 point as returned by the Places API geometry block.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the point the way the nearby search "location" parameter expects.
func (c Coordinates) String() string {
	return fmt.Sprintf("%v,%v", c.Lat, c.Lng)
}
