package models

import (
	"fmt"
	"strings"
)

// Unit is the distance unit picked next to the distance value.
type Unit string

const (
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "mi"
)

const METERS_PER_KILOMETER = 1000
const METERS_PER_MILE = 1609

// ParseUnit accepts "km" or "mi" in any case.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitKilometers:
		return UnitKilometers, nil
	case UnitMiles:
		return UnitMiles, nil
	}
	return "", fmt.Errorf("unknown distance unit %q, expected km or mi", s)
}

// RadiusMeters converts a distance in the given unit to whole meters.
// Bounds are not validated.
func RadiusMeters(distance int, unit Unit) int {
	if unit == UnitKilometers {
		return distance * METERS_PER_KILOMETER
	}
	return distance * METERS_PER_MILE
}
