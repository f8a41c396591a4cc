package ui

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places-exporter/api/googleplaces"
	"places-exporter/config"
	"places-exporter/models"
	services "places-exporter/service"
)

type failingNearbyAPI struct {
	googleplaces.PlacesAPI
	failType string
}

func (f *failingNearbyAPI) NearbySearch(ctx context.Context, center models.Coordinates, radius int, typeCode string) (*models.NearbySearchResponse, error) {
	if typeCode == f.failType {
		return nil, errors.New("upstream timeout")
	}
	return f.PlacesAPI.NearbySearch(ctx, center, radius, typeCode)
}

func fixtureAPI() googleplaces.PlacesAPI {
	resources := filepath.Join("..", config.RESOURCES_PATH_PREFIX)
	return googleplaces.NewPlacesApiClientMock(
		filepath.Join(resources, config.TEXT_SEARCH_RESPONSE_RESOURCE),
		filepath.Join(resources, config.NEARBY_SEARCH_RESPONSE_RESOURCE),
	)
}

func newTerminalWith(t *testing.T, api googleplaces.PlacesAPI, in io.Reader) (*Terminal, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	session := services.NewSessionService(api, services.NewExportService(dir), nil)
	out := &bytes.Buffer{}
	return NewTerminal(session, bufio.NewReader(in), out), out, dir
}

func newTestTerminal(t *testing.T, input string) (*Terminal, *bytes.Buffer, string) {
	t.Helper()
	return newTerminalWith(t, fixtureAPI(), strings.NewReader(input))
}

func TestPromptAPIKey(t *testing.T) {
	var out bytes.Buffer
	key, ok := PromptAPIKey(bufio.NewReader(strings.NewReader("  abc123 \n")), &out)

	assert.True(t, ok)
	assert.Equal(t, "abc123", key)
	assert.Contains(t, out.String(), "Enter your Google API Key")
	assert.Contains(t, out.String(), config.API_KEY_CONSOLE_URL)
}

func TestPromptAPIKey_Missing(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n"} {
		var out bytes.Buffer
		key, ok := PromptAPIKey(bufio.NewReader(strings.NewReader(input)), &out)

		assert.False(t, ok, "input %q", input)
		assert.Empty(t, key)
		assert.Contains(t, out.String(), "[No API Key Provided] Application will close without a valid API key.")
	}
}

func TestTerminal_FullSession(t *testing.T) {
	input := strings.Join([]string{
		"city Paris",
		"select 1",
		"search 5 km attractions,hotels restaurants",
		"check 1 4",
		"uncheck 4",
		"export",
		"export all",
		"map",
		"quit",
		"city never-reached",
	}, "\n")
	term, out, dir := newTestTerminal(t, input)

	require.NoError(t, term.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "1. Paris, France")
	assert.Contains(t, text, "2. Paris, TX, USA")
	assert.Contains(t, text, "[City Selected] lat=48.856614, lng=2.3522219")
	assert.Contains(t, text, "1. [x] Louvre Museum - Rue de Rivoli, Paris (Attractions")
	assert.Contains(t, text, "3. [ ] Hôtel du Louvre - Place André Malraux, Paris (Hotels")
	assert.Contains(t, text, "[Success] CSV file downloaded successfully.\nSaved at: "+filepath.Join(dir, "selected_places.csv"))
	assert.Contains(t, text, "[Success] All Places CSV downloaded.\nSaved at: "+filepath.Join(dir, "all_places.csv"))
	assert.NotContains(t, text, "never-reached")

	selected, err := os.ReadFile(filepath.Join(dir, "selected_places.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Name,Address,Latitude,Longitude,Category\nLouvre Museum,\"Rue de Rivoli, Paris\",48.8606111,2.337644,Attractions\n", string(selected))

	all, err := os.ReadFile(filepath.Join(dir, "all_places.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(all)), "\n"), 5)

	_, err = os.Stat(filepath.Join(dir, "places_map.html"))
	assert.NoError(t, err)
}

func TestTerminal_Messages(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"city", "[Input Error] Please enter a city name."},
		{"search 5 km hotels", "[No City Selected] Please search and select a city first."},
		{"select 1", "[Input Error] No item at that position."},
		{"select one", `[Input Error] "one" is not a number.`},
		{"search five km hotels", `[Input Error] "five" is not a whole distance.`},
		{"search 5 ft hotels", `[Input Error] unknown distance unit "ft", expected km or mi`},
		{"export", "[No Selection] Please select at least one place."},
		{"export all", "[No Places] Please search for places first."},
		{"map", "[No Places] Please search for places first."},
		{"recall 5 km", "[Archive] The place archive is not configured."},
		{"dance", `[Input Error] Unknown command "dance".`},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			term, out, _ := newTestTerminal(t, "")

			quit := term.Execute(context.Background(), test.line)

			assert.False(t, quit)
			assert.Contains(t, out.String(), test.want)
		})
	}
}

func TestTerminal_SearchRequiresCategory(t *testing.T) {
	term, out, _ := newTestTerminal(t, "")
	term.Execute(context.Background(), "city Paris")
	term.Execute(context.Background(), "select 2")

	term.Execute(context.Background(), "search 10 mi")
	assert.Contains(t, out.String(), "[Input Error] Please select at least one category.")

	term.Execute(context.Background(), "search 10 mi bars")
	assert.Contains(t, out.String(), `[Input Error] unknown category "bars"`)
}

func TestTerminal_RunStopsAtEOF(t *testing.T) {
	term, out, _ := newTestTerminal(t, "help")

	require.NoError(t, term.Run(context.Background()))
	assert.Contains(t, out.String(), "Commands:")
}

func TestErrorTitle(t *testing.T) {
	assert.Equal(t, "API Error", ErrorTitle(&services.UpstreamError{Op: "fetch places", Err: errors.New("x")}))
	assert.Equal(t, "File Error", ErrorTitle(&services.FileError{Path: "p", Err: errors.New("x")}))
	assert.Equal(t, "Archive Error", ErrorTitle(&services.ArchiveError{Err: errors.New("x")}))
	assert.Equal(t, "No Results", ErrorTitle(services.ErrNoCityFound))
	assert.Equal(t, "No Results", ErrorTitle(services.ErrNoPlaces))
	assert.Equal(t, "Input Error", ErrorTitle(services.ErrNoCategories))
}

func TestTerminal_RunStopsWhenContextDoneWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	term, _, _ := newTerminalWith(t, fixtureAPI(), pr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept waiting for input after the context was cancelled")
	}
}

func TestTerminal_SearchShowsResultsCollectedBeforeFailure(t *testing.T) {
	api := &failingNearbyAPI{PlacesAPI: fixtureAPI(), failType: models.TYPE_LODGING}
	input := strings.Join([]string{
		"city Paris",
		"select 1",
		"search 5 km attractions hotels restaurants",
		"export all",
	}, "\n")
	term, out, dir := newTerminalWith(t, api, strings.NewReader(input))

	require.NoError(t, term.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "[API Error] Failed to fetch places: upstream timeout")
	assert.Contains(t, text, "1. [ ] Louvre Museum")
	assert.Contains(t, text, "2. [ ] Eiffel Tower")
	assert.NotContains(t, text, "Le Procope")

	all, err := os.ReadFile(filepath.Join(dir, "all_places.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(all)), "\n"), 3)
}
