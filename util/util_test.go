package util

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places-exporter/models"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestReadSearchResponseFromJSON(t *testing.T) {
	content := `{
		"status": "OK",
		"results": [
			{
				"place_id": "1",
				"name": "Test Venue",
				"vicinity": "123 Test Street",
				"geometry": {"location": {"lat": 40.7128, "lng": -74.0060}}
			}
		]
	}`
	path := createTempFile(t, content)

	response, err := ReadSearchResponseFromJSON(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if response.Status != "OK" {
		t.Errorf("Expected Status 'OK', got %s", response.Status)
	}
	if len(response.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(response.Results))
	}
	if response.Results[0].Geometry.Location.Lng != -74.0060 {
		t.Errorf("Expected Lng -74.0060, got %f", response.Results[0].Geometry.Location.Lng)
	}
}

func TestReadSearchResponseFromJSON_Malformed(t *testing.T) {
	path := createTempFile(t, `{"invalid_json`)

	response, err := ReadSearchResponseFromJSON(path)
	assert.Error(t, err)
	assert.Nil(t, response)
}

func TestHaversineMeters(t *testing.T) {
	paris := models.Coordinates{Lat: 48.8566, Lng: 2.3522}
	london := models.Coordinates{Lat: 51.5074, Lng: -0.1278}

	assert.InDelta(t, 343_500, HaversineMeters(paris, london), 1_500)
	assert.Equal(t, 0.0, HaversineMeters(paris, paris))
}

func samplePlaces() []models.Place {
	return []models.Place{
		{Name: "Louvre Museum", Vicinity: "Rue de Rivoli, Paris", Location: &models.Coordinates{Lat: 48.8606111, Lng: 2.337644}, Category: "Attractions"},
		{Name: "Hôtel, \"du\" Louvre", Vicinity: "Place André Malraux", Location: &models.Coordinates{Lat: 48.8631, Lng: 2.3355}, Category: "Hotels"},
		{Name: "Nowhere", Vicinity: "N/A", Category: "Restaurants"},
	}
}

func TestWritePlacesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlacesCSV(&buf, samplePlaces()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Name", "Address", "Latitude", "Longitude", "Category"}, rows[0])
	assert.Equal(t, []string{"Louvre Museum", "Rue de Rivoli, Paris", "48.8606111", "2.337644", "Attractions"}, rows[1])
	assert.Equal(t, `Hôtel, "du" Louvre`, rows[2][0])
	assert.Equal(t, []string{"Nowhere", "N/A", "", "", "Restaurants"}, rows[3])
}

func TestPlaceRecord_DefaultsEmptyFields(t *testing.T) {
	assert.Equal(t, []string{"Unknown", "N/A", "", "", ""}, PlaceRecord(models.Place{}))
}

func TestWritePlacesCSVFile_CreatesDirAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Desktop", "all_places.csv")

	require.NoError(t, WritePlacesCSVFile(path, samplePlaces()))
	require.NoError(t, WritePlacesCSVFile(path, samplePlaces()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
}

func TestWritePlacesCSVFile_ParentIsAFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))

	err := WritePlacesCSVFile(filepath.Join(parent, "out.csv"), samplePlaces())
	assert.Error(t, err)
}

func TestPlotPlaces(t *testing.T) {
	var buf bytes.Buffer
	center := &models.Coordinates{Lat: 48.8566, Lng: 2.3522}

	require.NoError(t, PlotPlaces(&buf, center, samplePlaces()))

	html := buf.String()
	assert.Contains(t, html, "Places Map")
	assert.Contains(t, html, "Louvre Museum")
	assert.Contains(t, html, "Attractions")
	assert.NotContains(t, html, "Nowhere")
}

func TestPlotPlacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places_map.html")

	require.NoError(t, PlotPlacesFile(path, nil, samplePlaces()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSeriesOrder(t *testing.T) {
	places := []models.Place{{Category: "museum"}, {Category: "Restaurants"}, {Category: "Attractions"}, {Category: "museum"}}
	assert.Equal(t, []string{"Attractions", "Restaurants", "museum"}, seriesOrder(places))
}
