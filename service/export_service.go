package services

import (
	"log/slog"
	"path/filepath"

	"places-exporter/models"
	"places-exporter/util"
)

// ExportService writes result sets into a fixed folder.
type ExportService struct {
	dir string
}

// NewExportService constructs an ExportService writing into dir.
func NewExportService(dir string) *ExportService {
	return &ExportService{dir: dir}
}

// Dir returns the export folder.
func (es *ExportService) Dir() string {
	return es.dir
}

// ExportCSV writes places to dir/filename, overwriting any existing file, and
// returns the written path.
func (es *ExportService) ExportCSV(filename string, places []models.Place) (string, error) {
	path := filepath.Join(es.dir, filename)
	if err := util.WritePlacesCSVFile(path, places); err != nil {
		slog.Error("[ExportService] CSV export failed", "path", path, "err", err)
		return "", &FileError{Path: path, Err: err}
	}
	slog.Info("[ExportService] CSV exported", "path", path, "rows", len(places))
	return path, nil
}

// ExportMap renders places into an HTML map at dir/filename.
func (es *ExportService) ExportMap(filename string, center *models.Coordinates, places []models.Place) (string, error) {
	path := filepath.Join(es.dir, filename)
	if err := util.PlotPlacesFile(path, center, places); err != nil {
		slog.Error("[ExportService] map export failed", "path", path, "err", err)
		return "", &FileError{Path: path, Err: err}
	}
	slog.Info("[ExportService] map exported", "path", path, "places", len(places))
	return path, nil
}
