package models

import (
	"fmt"
	"strings"
)

// Category is the human readable label attached to every fetched place.
type Category string

const (
	CategoryAttractions Category = "Attractions"
	CategoryHotels      Category = "Hotels"
	CategoryRestaurants Category = "Restaurants"
)

// Places API type codes used by the nearby search.
const (
	TYPE_TOURIST_ATTRACTION = "tourist_attraction"
	TYPE_LODGING            = "lodging"
	TYPE_RESTAURANT         = "restaurant"
)

// AllCategories lists the categories in the order they are fetched.
var AllCategories = []Category{CategoryAttractions, CategoryHotels, CategoryRestaurants}

var categoryTypeCodes = map[Category]string{
	CategoryAttractions: TYPE_TOURIST_ATTRACTION,
	CategoryHotels:      TYPE_LODGING,
	CategoryRestaurants: TYPE_RESTAURANT,
}

// TypeCode returns the Places API type code for the category.
func (c Category) TypeCode() string {
	return categoryTypeCodes[c]
}

// CategoryLabel maps a Places API type code to its label. Unknown codes map to themselves.
func CategoryLabel(typeCode string) string {
	for category, code := range categoryTypeCodes {
		if code == typeCode {
			return string(category)
		}
	}
	return typeCode
}

// ParseCategory accepts a label ("Hotels"), its singular or lower-case form,
// or the raw type code ("lodging").
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attractions", "attraction", TYPE_TOURIST_ATTRACTION:
		return CategoryAttractions, nil
	case "hotels", "hotel", TYPE_LODGING:
		return CategoryHotels, nil
	case "restaurants", "restaurant":
		return CategoryRestaurants, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// OrderedCategories returns the selected categories in fetch order, without duplicates.
func OrderedCategories(selected []Category) []Category {
	set := make(map[Category]struct{}, len(selected))
	for _, c := range selected {
		set[c] = struct{}{}
	}
	ordered := make([]Category, 0, len(set))
	for _, c := range AllCategories {
		if _, ok := set[c]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
