package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SessionRoutes is the set of handlers the router mounts.
type SessionRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	SearchCity(w http.ResponseWriter, r *http.Request)
	SelectCity(w http.ResponseWriter, r *http.Request)
	SearchPlaces(w http.ResponseWriter, r *http.Request)
	ListPlaces(w http.ResponseWriter, r *http.Request)
	SetChecked(w http.ResponseWriter, r *http.Request)
	RecallPlaces(w http.ResponseWriter, r *http.Request)
	ExportSelected(w http.ResponseWriter, r *http.Request)
	ExportAll(w http.ResponseWriter, r *http.Request)
	ExportMap(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	sessionHandler SessionRoutes
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(sessionHandler SessionRoutes, router *mux.Router) *Router {
	return &Router{
		sessionHandler: sessionHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	h := r.sessionHandler

	r.router.HandleFunc("/ping", h.Ping).Methods("GET")

	// expects ?query={city name}
	r.router.HandleFunc("/v1/cities", h.SearchCity).Methods("GET")
	r.router.HandleFunc("/v1/cities/{index:[0-9]+}/select", h.SelectCity).Methods("POST")

	// expects ?distance={int}&unit={km|mi}&categories={attractions,hotels,restaurants}
	r.router.HandleFunc("/v1/places/search", h.SearchPlaces).Methods("POST")
	r.router.HandleFunc("/v1/places/recall", h.RecallPlaces).Methods("POST")
	r.router.HandleFunc("/v1/places", h.ListPlaces).Methods("GET")
	r.router.HandleFunc("/v1/places/{index:[0-9]+}/check", h.SetChecked).Methods("POST")

	r.router.HandleFunc("/v1/exports/selected", h.ExportSelected).Methods("POST")
	r.router.HandleFunc("/v1/exports/all", h.ExportAll).Methods("POST")
	r.router.HandleFunc("/v1/exports/map", h.ExportMap).Methods("POST")
}
