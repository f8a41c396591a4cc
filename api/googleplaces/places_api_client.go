package googleplaces

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"places-exporter/api"
	"places-exporter/config"
	"places-exporter/models"
)

// PlacesApiClient embeds the common HTTPClient
type PlacesApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewPlacesApiClient creates a new instance of PlacesApiClient
func NewPlacesApiClient(httpClient *api.HTTPClient) *PlacesApiClient {
	return &PlacesApiClient{
		HTTPClient: httpClient,
	}
}

// SetCredentials sets the API key sent as the "key" query parameter.
func (c *PlacesApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// TextSearch resolves a free-text query to candidate places.
func (c *PlacesApiClient) TextSearch(ctx context.Context, query string) (*models.TextSearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)

	var response models.TextSearchResponse
	if err := c.Get(ctx, config.TEXT_SEARCH_ENDPOINT, params, &response); err != nil {
		return nil, err
	}
	if err := checkStatus(&response); err != nil {
		return nil, err
	}
	slog.Debug("[PlacesApiClient] text search done", "query", query, "results", len(response.Results))
	return &response, nil
}

// NearbySearch lists places of one type within radiusMeters of center.
func (c *PlacesApiClient) NearbySearch(ctx context.Context, center models.Coordinates, radiusMeters int, typeCode string) (*models.NearbySearchResponse, error) {
	params := url.Values{}
	params.Set("location", center.String())
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", typeCode)
	params.Set("key", c.apiKey)

	var response models.NearbySearchResponse
	if err := c.Get(ctx, config.NEARBY_SEARCH_ENDPOINT, params, &response); err != nil {
		return nil, err
	}
	if err := checkStatus(&response); err != nil {
		return nil, err
	}
	slog.Debug("[PlacesApiClient] nearby search done", "type", typeCode, "radius", radiusMeters, "results", len(response.Results))
	return &response, nil
}
