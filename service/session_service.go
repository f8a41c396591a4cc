package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"places-exporter/api/googleplaces"
	"places-exporter/config"
	"places-exporter/models"
	"places-exporter/util"
)

// PlaceArchive keeps every fetched place so it can be recalled later without the API.
type PlaceArchive interface {
	UpsertPlace(p models.Place) error
	GetNearbyPlaces(center models.Coordinates, radius float64) ([]models.Place, error)
}

// Exporter writes result sets to disk.
type Exporter interface {
	ExportCSV(filename string, places []models.Place) (string, error)
	ExportMap(filename string, center *models.Coordinates, places []models.Place) (string, error)
}

// PlaceSearchRequest holds the inputs of a nearby search.
type PlaceSearchRequest struct {
	Categories []models.Category
	Distance   int
	Unit       models.Unit
}

// PlaceView is one row of the result list.
type PlaceView struct {
	Index          int          `json:"index"`
	Place          models.Place `json:"place"`
	Checked        bool         `json:"checked"`
	DistanceMeters *float64     `json:"distance_meters,omitempty"`
}

// SessionService holds the state of one search session: the city candidates, the
// committed center and the current result list with its check marks.
type SessionService struct {
	placesAPI googleplaces.PlacesAPI
	exporter  Exporter
	archive   PlaceArchive

	mu         sync.Mutex
	candidates []models.CityCandidate
	center     *models.Coordinates
	results    []models.Place
	checked    []bool
}

// NewSessionService constructs a SessionService. archive may be nil.
func NewSessionService(placesAPI googleplaces.PlacesAPI, exporter Exporter, archive PlaceArchive) *SessionService {
	return &SessionService{
		placesAPI: placesAPI,
		exporter:  exporter,
		archive:   archive,
	}
}

// SearchCity resolves query to candidate cities and replaces the candidate list.
// On failure or zero hits the previous candidates are kept.
func (s *SessionService) SearchCity(ctx context.Context, query string) ([]models.CityCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("[SessionService] searching city", "query", query)
	resp, err := s.placesAPI.TextSearch(ctx, query)
	if err != nil {
		slog.Error("[SessionService] city search failed", "query", query, "err", err)
		return nil, &UpstreamError{Op: "search city", Err: err}
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoCityFound
	}

	candidates := make([]models.CityCandidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, models.CandidateFromResult(r))
	}
	s.candidates = candidates
	return copyCandidates(candidates), nil
}

// Candidates returns the current city candidates.
func (s *SessionService) Candidates() []models.CityCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCandidates(s.candidates)
}

// SelectCity commits the coordinates of candidate index as the search center.
func (s *SessionService) SelectCity(index int) (models.Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.candidates) {
		return models.Coordinates{}, ErrInvalidIndex
	}
	center := s.candidates[index].Location
	s.center = &center
	slog.Info("[SessionService] city selected", "description", s.candidates[index].Description, "lat", center.Lat, "lng", center.Lng)
	return center, nil
}

// Center returns the committed search center, or nil.
func (s *SessionService) Center() *models.Coordinates {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.center == nil {
		return nil
	}
	c := *s.center
	return &c
}

// FetchPlaces runs one nearby search per selected category and replaces the result
// list. The first failing request stops the loop; places collected before it are
// kept and returned along with the error.
func (s *SessionService) FetchPlaces(ctx context.Context, req PlaceSearchRequest) ([]PlaceView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.center == nil {
		return nil, ErrNoCitySelected
	}
	categories := models.OrderedCategories(req.Categories)
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	radius := models.RadiusMeters(req.Distance, req.Unit)

	s.setResults(nil)

	for _, category := range categories {
		code := category.TypeCode()
		slog.Info("[SessionService] fetching places", "type", code, "radius", radius)
		resp, err := s.placesAPI.NearbySearch(ctx, *s.center, radius, code)
		if err != nil {
			slog.Error("[SessionService] nearby search failed, stopping", "type", code, "err", err)
			return s.views(), &UpstreamError{Op: "fetch places", Err: err}
		}

		label := models.CategoryLabel(code)
		for _, r := range resp.Results {
			p := models.PlaceFromResult(r, label)
			s.results = append(s.results, p)
			s.checked = append(s.checked, false)
			s.archivePlace(p)
		}
	}

	if len(s.results) == 0 {
		return nil, ErrNoPlaces
	}
	return s.views(), nil
}

// RecallArchived replaces the result list with archived places within the radius
// of the current center.
func (s *SessionService) RecallArchived(distance int, unit models.Unit) ([]PlaceView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	if s.center == nil {
		return nil, ErrNoCitySelected
	}

	radius := models.RadiusMeters(distance, unit)
	places, err := s.archive.GetNearbyPlaces(*s.center, float64(radius))
	if err != nil {
		slog.Error("[SessionService] archive lookup failed", "err", err)
		return nil, &ArchiveError{Err: err}
	}
	s.setResults(places)
	if len(places) == 0 {
		return nil, ErrNoPlaces
	}
	return s.views(), nil
}

// Results returns the current result list.
func (s *SessionService) Results() []PlaceView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views()
}

// SetChecked marks or unmarks result index for the selected export.
func (s *SessionService) SetChecked(index int, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.checked) {
		return ErrInvalidIndex
	}
	s.checked[index] = checked
	return nil
}

// CheckAll marks or unmarks every result.
func (s *SessionService) CheckAll(checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checked {
		s.checked[i] = checked
	}
}

// ExportSelected writes the checked results to the selected-places CSV.
func (s *SessionService) ExportSelected() (string, error) {
	s.mu.Lock()
	var selected []models.Place
	for i, p := range s.results {
		if s.checked[i] {
			selected = append(selected, p)
		}
	}
	s.mu.Unlock()

	if len(selected) == 0 {
		return "", ErrNoSelection
	}
	return s.exporter.ExportCSV(config.SELECTED_PLACES_CSV, selected)
}

// ExportAll writes every result to the all-places CSV, ignoring check marks.
func (s *SessionService) ExportAll() (string, error) {
	s.mu.Lock()
	all := append([]models.Place(nil), s.results...)
	s.mu.Unlock()

	if len(all) == 0 {
		return "", ErrNoResults
	}
	return s.exporter.ExportCSV(config.ALL_PLACES_CSV, all)
}

// ExportMap renders every result on an HTML map.
func (s *SessionService) ExportMap() (string, error) {
	s.mu.Lock()
	all := append([]models.Place(nil), s.results...)
	var center *models.Coordinates
	if s.center != nil {
		c := *s.center
		center = &c
	}
	s.mu.Unlock()

	if len(all) == 0 {
		return "", ErrNoResults
	}
	return s.exporter.ExportMap(config.PLACES_MAP_HTML, center, all)
}

func (s *SessionService) setResults(places []models.Place) {
	s.results = places
	s.checked = make([]bool, len(places))
}

func (s *SessionService) archivePlace(p models.Place) {
	if s.archive == nil {
		return
	}
	if err := s.archive.UpsertPlace(p); err != nil {
		slog.Warn("[SessionService] could not archive place", "name", p.Name, "err", err)
	}
}

// views must be called with mu held.
func (s *SessionService) views() []PlaceView {
	out := make([]PlaceView, 0, len(s.results))
	for i, p := range s.results {
		v := PlaceView{Index: i, Place: p, Checked: s.checked[i]}
		if s.center != nil && p.Location != nil {
			d := util.HaversineMeters(*s.center, *p.Location)
			v.DistanceMeters = &d
		}
		out = append(out, v)
	}
	return out
}

func copyCandidates(c []models.CityCandidate) []models.CityCandidate {
	return append([]models.CityCandidate(nil), c...)
}
