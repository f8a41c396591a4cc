package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"places-exporter/models"
)

const CENTER_SERIES_NAME = "Center"

// PlotPlaces renders places as a geo scatter chart, one series per category,
// plus the search center when known.
func PlotPlaces(w io.Writer, center *models.Coordinates, places []models.Place) error {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Places Map",
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%d places", len(places))}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	if center != nil {
		geo.AddSeries(CENTER_SERIES_NAME, types.ChartEffectScatter, []opts.GeoData{
			{Name: CENTER_SERIES_NAME, Value: []float64{center.Lng, center.Lat}},
		})
	}

	for _, category := range seriesOrder(places) {
		var points []opts.GeoData
		for _, p := range places {
			if p.Category != category || p.Location == nil {
				continue
			}
			// echarts expects [lng, lat]
			points = append(points, opts.GeoData{Name: p.Name, Value: []float64{p.Location.Lng, p.Location.Lat}})
		}
		if len(points) == 0 {
			continue
		}
		geo.AddSeries(category, types.ChartScatter, points,
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(false),
				Formatter: "{b}",
			}),
		)
	}

	return geo.Render(w)
}

// PlotPlacesFile renders the map into an HTML file at path.
func PlotPlacesFile(path string, center *models.Coordinates, places []models.Place) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	if err := PlotPlaces(f, center, places); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}

// seriesOrder returns the categories present in places, known ones first.
func seriesOrder(places []models.Place) []string {
	seen := make(map[string]bool)
	for _, p := range places {
		seen[p.Category] = true
	}
	var order []string
	for _, c := range models.AllCategories {
		if seen[string(c)] {
			order = append(order, string(c))
			delete(seen, string(c))
		}
	}
	for _, p := range places {
		if seen[p.Category] {
			order = append(order, p.Category)
			delete(seen, p.Category)
		}
	}
	return order
}
