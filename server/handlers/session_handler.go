package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"places-exporter/models"
	services "places-exporter/service"
)

const (
	QUERY_QUERY_ARG      = "query"
	DISTANCE_QUERY_ARG   = "distance"
	UNIT_QUERY_ARG       = "unit"
	CATEGORIES_QUERY_ARG = "categories"
	CHECKED_QUERY_ARG    = "checked"
	INDEX_PATH_VAR       = "index"
)

// PlacesResponse is returned by every endpoint that yields a result list.
type PlacesResponse struct {
	Places []services.PlaceView `json:"places"`
	Error  string               `json:"error,omitempty"`
}

type ExportResponse struct {
	Path string `json:"path"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionHandler exposes the shared SessionService over HTTP.
type SessionHandler struct {
	session *services.SessionService
}

func NewSessionHandler(session *services.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// Ping handles GET /ping
func (h *SessionHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// SearchCity handles GET /v1/cities?query=
func (h *SessionHandler) SearchCity(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.session.SearchCity(r.Context(), r.URL.Query().Get(QUERY_QUERY_ARG))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

// SelectCity handles POST /v1/cities/{index}/select
func (h *SessionHandler) SelectCity(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}
	center, err := h.session.SelectCity(index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"center": center})
}

// SearchPlaces handles POST /v1/places/search?distance=&unit=&categories=
func (h *SessionHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	distance, unit, ok := parseRadius(w, vals)
	if !ok {
		return
	}
	var categories []models.Category
	for _, name := range strings.Split(vals.Get(CATEGORIES_QUERY_ARG), ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := models.ParseCategory(name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		categories = append(categories, c)
	}

	views, err := h.session.FetchPlaces(r.Context(), services.PlaceSearchRequest{
		Categories: categories,
		Distance:   distance,
		Unit:       unit,
	})
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) && len(views) > 0 {
			// partial results survive a failed category
			writeJSON(w, http.StatusBadGateway, PlacesResponse{Places: views, Error: err.Error()})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlacesResponse{Places: views})
}

// ListPlaces handles GET /v1/places
func (h *SessionHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PlacesResponse{Places: h.session.Results()})
}

// SetChecked handles POST /v1/places/{index}/check?checked=
func (h *SessionHandler) SetChecked(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}
	checked := true
	if v := r.URL.Query().Get(CHECKED_QUERY_ARG); v != "" {
		var err error
		if checked, err = strconv.ParseBool(v); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid argument " + CHECKED_QUERY_ARG})
			return
		}
	}
	if err := h.session.SetChecked(index, checked); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlacesResponse{Places: h.session.Results()})
}

// RecallPlaces handles POST /v1/places/recall?distance=&unit=
func (h *SessionHandler) RecallPlaces(w http.ResponseWriter, r *http.Request) {
	distance, unit, ok := parseRadius(w, r.URL.Query())
	if !ok {
		return
	}
	views, err := h.session.RecallArchived(distance, unit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlacesResponse{Places: views})
}

// ExportSelected handles POST /v1/exports/selected
func (h *SessionHandler) ExportSelected(w http.ResponseWriter, r *http.Request) {
	h.export(w, h.session.ExportSelected)
}

// ExportAll handles POST /v1/exports/all
func (h *SessionHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	h.export(w, h.session.ExportAll)
}

// ExportMap handles POST /v1/exports/map
func (h *SessionHandler) ExportMap(w http.ResponseWriter, r *http.Request) {
	h.export(w, h.session.ExportMap)
}

func (h *SessionHandler) export(w http.ResponseWriter, fn func() (string, error)) {
	path, err := fn()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ExportResponse{Path: path})
}

func parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)[INDEX_PATH_VAR])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid path argument " + INDEX_PATH_VAR})
		return 0, false
	}
	return index, true
}

func parseRadius(w http.ResponseWriter, vals url.Values) (int, models.Unit, bool) {
	distance, err := strconv.Atoi(vals.Get(DISTANCE_QUERY_ARG))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid argument " + DISTANCE_QUERY_ARG})
		return 0, "", false
	}
	unit, err := models.ParseUnit(vals.Get(UNIT_QUERY_ARG))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return 0, "", false
	}
	return distance, unit, true
}

// StatusFor maps a session error to an HTTP status code.
func StatusFor(err error) int {
	var upstream *services.UpstreamError
	var fileErr *services.FileError
	var archiveErr *services.ArchiveError
	switch {
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.As(err, &archiveErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &fileErr):
		return http.StatusInternalServerError
	case errors.Is(err, services.ErrNoCityFound), errors.Is(err, services.ErrNoPlaces):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNoCitySelected), errors.Is(err, services.ErrNoResults),
		errors.Is(err, services.ErrNoSelection), errors.Is(err, services.ErrArchiveDisabled):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyQuery), errors.Is(err, services.ErrNoCategories),
		errors.Is(err, services.ErrInvalidIndex):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("[SessionHandler] request failed", "status", status, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("[SessionHandler] error encoding response", "err", err)
	}
}
