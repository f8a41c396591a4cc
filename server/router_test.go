package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockSessionHandler answers every route with its own name.
type MockSessionHandler struct{}

func reply(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}

func (h *MockSessionHandler) Ping(w http.ResponseWriter, r *http.Request) { reply("ping")(w, r) }
func (h *MockSessionHandler) SearchCity(w http.ResponseWriter, r *http.Request) {
	reply("search city")(w, r)
}
func (h *MockSessionHandler) SelectCity(w http.ResponseWriter, r *http.Request) {
	reply("select city " + mux.Vars(r)["index"])(w, r)
}
func (h *MockSessionHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	reply("search places")(w, r)
}
func (h *MockSessionHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	reply("list places")(w, r)
}
func (h *MockSessionHandler) SetChecked(w http.ResponseWriter, r *http.Request) {
	reply("check " + mux.Vars(r)["index"])(w, r)
}
func (h *MockSessionHandler) RecallPlaces(w http.ResponseWriter, r *http.Request) {
	reply("recall")(w, r)
}
func (h *MockSessionHandler) ExportSelected(w http.ResponseWriter, r *http.Request) {
	reply("export selected")(w, r)
}
func (h *MockSessionHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	reply("export all")(w, r)
}
func (h *MockSessionHandler) ExportMap(w http.ResponseWriter, r *http.Request) {
	reply("export map")(w, r)
}

func TestRouter_RegisterRoutes(t *testing.T) {
	router := mux.NewRouter()
	appRouter := NewRouter(&MockSessionHandler{}, router)
	appRouter.RegisterRoutes()

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{"Ping Route", "GET", "/ping", http.StatusOK, "ping"},
		{"Search City", "GET", "/v1/cities?query=Paris", http.StatusOK, "search city"},
		{"Select City", "POST", "/v1/cities/2/select", http.StatusOK, "select city 2"},
		{"Select City Non Numeric", "POST", "/v1/cities/two/select", http.StatusNotFound, ""},
		{"Search Places", "POST", "/v1/places/search?distance=5&unit=km", http.StatusOK, "search places"},
		{"Recall Places", "POST", "/v1/places/recall", http.StatusOK, "recall"},
		{"List Places", "GET", "/v1/places", http.StatusOK, "list places"},
		{"Check Place", "POST", "/v1/places/3/check", http.StatusOK, "check 3"},
		{"Export Selected", "POST", "/v1/exports/selected", http.StatusOK, "export selected"},
		{"Export All", "POST", "/v1/exports/all", http.StatusOK, "export all"},
		{"Export Map", "POST", "/v1/exports/map", http.StatusOK, "export map"},
		{"Wrong Method", "GET", "/v1/exports/all", http.StatusMethodNotAllowed, ""},
		{"Invalid Route", "GET", "/invalid", http.StatusNotFound, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
