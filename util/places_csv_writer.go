package util

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"places-exporter/models"
)

// CSV_HEADER is the fixed column order of every export.
var CSV_HEADER = []string{"Name", "Address", "Latitude", "Longitude", "Category"}

// PlaceRecord projects a place onto the CSV columns. A missing location leaves
// both coordinate cells empty.
func PlaceRecord(p models.Place) []string {
	name := p.Name
	if name == "" {
		name = models.UNKNOWN_NAME
	}
	address := p.Vicinity
	if address == "" {
		address = models.UNKNOWN_ADDRESS
	}
	lat, lng := "", ""
	if p.Location != nil {
		lat = strconv.FormatFloat(p.Location.Lat, 'f', -1, 64)
		lng = strconv.FormatFloat(p.Location.Lng, 'f', -1, 64)
	}
	return []string{name, address, lat, lng, p.Category}
}

// WritePlacesCSV writes the header plus one row per place.
func WritePlacesCSV(w io.Writer, places []models.Place) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSV_HEADER); err != nil {
		return err
	}
	for _, p := range places {
		if err := cw.Write(PlaceRecord(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePlacesCSVFile writes places to path, creating the parent directory and
// overwriting any existing file.
func WritePlacesCSVFile(path string, places []models.Place) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	if err := WritePlacesCSV(f, places); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return f.Close()
}
