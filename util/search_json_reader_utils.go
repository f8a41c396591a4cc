package util

import (
	"encoding/json"
	"fmt"
	"os"

	"places-exporter/models"
)

// ReadSearchResponseFromJSON loads a Places API SearchResponse from JSON on disk.
func ReadSearchResponseFromJSON(filePath string) (*models.SearchResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal SearchResponse: %w", err)
	}
	return &resp, nil
}
