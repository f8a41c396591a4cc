package googleplaces

import (
	"context"
	"fmt"

	"places-exporter/models"
)

// PlacesAPI defines the interface for interacting with the Google Places web service
type PlacesAPI interface {
	TextSearch(ctx context.Context, query string) (*models.TextSearchResponse, error)
	NearbySearch(ctx context.Context, center models.Coordinates, radiusMeters int, typeCode string) (*models.NearbySearchResponse, error)
	SetCredentials(apiKey string)
}

// APIStatusError is returned when the API answers 200 with a status that carries no results,
// e.g. REQUEST_DENIED or OVER_QUERY_LIMIT.
type APIStatusError struct {
	Status  string
	Message string
}

func (e *APIStatusError) Error() string {
	if e.Message == "" {
		return "places api status " + e.Status
	}
	return fmt.Sprintf("places api status %s: %s", e.Status, e.Message)
}

func checkStatus(resp *models.SearchResponse) error {
	switch resp.Status {
	case models.STATUS_OK, models.STATUS_ZERO_RESULTS, "":
		return nil
	}
	return &APIStatusError{Status: resp.Status, Message: resp.ErrorMessage}
}
