package googleplaces

import (
	"context"
	"log/slog"
	"slices"

	"places-exporter/models"
	"places-exporter/util"
)

// PlacesApiClientMock serves canned responses from JSON fixtures.
type PlacesApiClientMock struct {
	textSearchPath   string
	nearbySearchPath string
}

// NewPlacesApiClientMock creates a new instance of PlacesApiClientMock
func NewPlacesApiClientMock(textSearchPath, nearbySearchPath string) *PlacesApiClientMock {
	return &PlacesApiClientMock{
		textSearchPath:   textSearchPath,
		nearbySearchPath: nearbySearchPath,
	}
}

func (c *PlacesApiClientMock) SetCredentials(apiKey string) {}

// TextSearch returns the text search fixture regardless of the query.
func (c *PlacesApiClientMock) TextSearch(ctx context.Context, query string) (*models.TextSearchResponse, error) {
	response, err := util.ReadSearchResponseFromJSON(c.textSearchPath)
	if err != nil {
		slog.Error("[PlacesApiClientMock] could not read text search fixture", "err", err)
		return nil, err
	}
	return response, nil
}

// NearbySearch returns the fixture results whose types include typeCode.
func (c *PlacesApiClientMock) NearbySearch(ctx context.Context, center models.Coordinates, radiusMeters int, typeCode string) (*models.NearbySearchResponse, error) {
	response, err := util.ReadSearchResponseFromJSON(c.nearbySearchPath)
	if err != nil {
		slog.Error("[PlacesApiClientMock] could not read nearby search fixture", "err", err)
		return nil, err
	}

	filtered := make([]models.PlaceResult, 0, len(response.Results))
	for _, r := range response.Results {
		if slices.Contains(r.Types, typeCode) {
			filtered = append(filtered, r)
		}
	}
	response.Results = filtered
	if len(filtered) == 0 {
		response.Status = models.STATUS_ZERO_RESULTS
	}
	return response, nil
}
