package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"places-exporter/config"
	"places-exporter/models"
	services "places-exporter/service"
)

const PROMPT = "> "

const HELP_TEXT = `Commands:
  city <name>                             search for a city
  select <n>                              use candidate n as the search center
  search <distance> <km|mi> <category...> fetch attractions, hotels and/or restaurants
  list                                    show the current results
  check <n...|all>                        mark results for export
  uncheck <n...|all>                      unmark results
  export                                  write checked results to CSV
  export all                              write every result to CSV
  map                                     render the results on an HTML map
  recall <distance> <km|mi>               load archived places around the center
  help                                    show this help
  quit                                    exit`

// Terminal drives a SessionService from line-oriented input.
type Terminal struct {
	session *services.SessionService
	in      *bufio.Reader
	out     io.Writer
}

// NewTerminal creates a Terminal reading commands from in.
func NewTerminal(session *services.SessionService, in *bufio.Reader, out io.Writer) *Terminal {
	return &Terminal{session: session, in: in, out: out}
}

// PromptAPIKey asks for the API key. ok is false when no key was entered.
func PromptAPIKey(in *bufio.Reader, out io.Writer) (key string, ok bool) {
	fmt.Fprintf(out, "Enter your Google API Key:\n\nGoogle Places API must be enabled.\n\nYou can create an API key at:\n%s\n\n%s",
		config.API_KEY_CONSOLE_URL, PROMPT)
	line, err := in.ReadString('\n')
	key = strings.TrimSpace(line)
	if key == "" && err != nil {
		fmt.Fprintln(out)
	}
	if key == "" {
		showMessage(out, "No API Key Provided", "Application will close without a valid API key.")
		return "", false
	}
	return key, true
}

type readResult struct {
	line string
	err  error
}

// readLines feeds input lines to the returned channel until a read fails or done closes.
func (t *Terminal) readLines(done <-chan struct{}) <-chan readResult {
	lines := make(chan readResult)
	go func() {
		defer close(lines)
		for {
			line, err := t.in.ReadString('\n')
			select {
			case lines <- readResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// Run reads and executes commands until quit, end of input or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, `Places to CSV. Type "help" for commands.`)

	done := make(chan struct{})
	defer close(done)
	lines := t.readLines(done)

	for {
		fmt.Fprint(t.out, PROMPT)
		var res readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(t.out)
			return nil
		case res = <-lines:
		}

		if line := strings.TrimSpace(res.line); line != "" {
			if quit := t.Execute(ctx, line); quit {
				return nil
			}
		}
		if res.err == io.EOF {
			fmt.Fprintln(t.out)
			return nil
		}
		if res.err != nil {
			return fmt.Errorf("read command: %w", res.err)
		}
	}
}

// Execute runs a single command line and reports whether the session should end.
func (t *Terminal) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(t.out, HELP_TEXT)
	case "city":
		t.searchCity(ctx, strings.Join(args, " "))
	case "select":
		t.selectCity(args)
	case "search":
		t.fetchPlaces(ctx, args)
	case "list":
		t.printResults(t.session.Results())
	case "check":
		t.setChecked(args, true)
	case "uncheck":
		t.setChecked(args, false)
	case "export":
		t.export(args)
	case "map":
		t.exportMap()
	case "recall":
		t.recall(args)
	default:
		showMessage(t.out, "Input Error", fmt.Sprintf("Unknown command %q. Type \"help\" for commands.", cmd))
	}
	return false
}

func (t *Terminal) searchCity(ctx context.Context, query string) {
	candidates, err := t.session.SearchCity(ctx, query)
	if err != nil {
		t.showError(err)
		return
	}
	for i, c := range candidates {
		fmt.Fprintf(t.out, "  %d. %s\n", i+1, c.Description)
	}
}

func (t *Terminal) selectCity(args []string) {
	if len(args) != 1 {
		showMessage(t.out, "Input Error", "Usage: select <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		showMessage(t.out, "Input Error", fmt.Sprintf("%q is not a number.", args[0]))
		return
	}
	center, err := t.session.SelectCity(n - 1)
	if err != nil {
		t.showError(err)
		return
	}
	showMessage(t.out, "City Selected", fmt.Sprintf("lat=%v, lng=%v", center.Lat, center.Lng))
}

func (t *Terminal) fetchPlaces(ctx context.Context, args []string) {
	if len(args) < 2 {
		showMessage(t.out, "Input Error", "Usage: search <distance> <km|mi> <category...>")
		return
	}
	distance, unit, ok := t.parseRadius(args[0], args[1])
	if !ok {
		return
	}
	var categories []models.Category
	for _, arg := range args[2:] {
		for _, name := range strings.Split(arg, ",") {
			if name == "" {
				continue
			}
			c, err := models.ParseCategory(name)
			if err != nil {
				showMessage(t.out, "Input Error", err.Error())
				return
			}
			categories = append(categories, c)
		}
	}

	views, err := t.session.FetchPlaces(ctx, services.PlaceSearchRequest{
		Categories: categories,
		Distance:   distance,
		Unit:       unit,
	})
	if err != nil {
		t.showError(err)
	}
	// a failed category still leaves the earlier ones listed
	if len(views) > 0 {
		t.printResults(views)
	}
}

func (t *Terminal) recall(args []string) {
	if len(args) != 2 {
		showMessage(t.out, "Input Error", "Usage: recall <distance> <km|mi>")
		return
	}
	distance, unit, ok := t.parseRadius(args[0], args[1])
	if !ok {
		return
	}
	views, err := t.session.RecallArchived(distance, unit)
	if err != nil {
		t.showError(err)
		return
	}
	t.printResults(views)
}

func (t *Terminal) parseRadius(distanceArg, unitArg string) (int, models.Unit, bool) {
	distance, err := strconv.Atoi(distanceArg)
	if err != nil {
		showMessage(t.out, "Input Error", fmt.Sprintf("%q is not a whole distance.", distanceArg))
		return 0, "", false
	}
	unit, err := models.ParseUnit(unitArg)
	if err != nil {
		showMessage(t.out, "Input Error", err.Error())
		return 0, "", false
	}
	return distance, unit, true
}

func (t *Terminal) setChecked(args []string, checked bool) {
	if len(args) == 0 {
		showMessage(t.out, "Input Error", "Usage: check|uncheck <n...|all>")
		return
	}
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		t.session.CheckAll(checked)
		t.printResults(t.session.Results())
		return
	}
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			showMessage(t.out, "Input Error", fmt.Sprintf("%q is not a number.", arg))
			return
		}
		if err := t.session.SetChecked(n-1, checked); err != nil {
			t.showError(err)
			return
		}
	}
	t.printResults(t.session.Results())
}

func (t *Terminal) export(args []string) {
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		path, err := t.session.ExportAll()
		if err != nil {
			t.showError(err)
			return
		}
		showMessage(t.out, "Success", "All Places CSV downloaded.\nSaved at: "+path)
		return
	}
	path, err := t.session.ExportSelected()
	if err != nil {
		t.showError(err)
		return
	}
	showMessage(t.out, "Success", "CSV file downloaded successfully.\nSaved at: "+path)
}

func (t *Terminal) exportMap() {
	path, err := t.session.ExportMap()
	if err != nil {
		t.showError(err)
		return
	}
	showMessage(t.out, "Success", "Map saved at: "+path)
}

func (t *Terminal) printResults(views []services.PlaceView) {
	if len(views) == 0 {
		fmt.Fprintln(t.out, "  (no results)")
		return
	}
	for _, v := range views {
		mark := " "
		if v.Checked {
			mark = "x"
		}
		detail := v.Place.Category
		if v.DistanceMeters != nil {
			detail += fmt.Sprintf(", %.1f km", *v.DistanceMeters/1000)
		}
		fmt.Fprintf(t.out, "  %d. [%s] %s - %s (%s)\n", v.Index+1, mark, v.Place.Name, v.Place.Vicinity, detail)
	}
}

func (t *Terminal) showError(err error) {
	showMessage(t.out, ErrorTitle(err), err.Error())
}

// ErrorTitle picks the message title shown for err.
func ErrorTitle(err error) string {
	var upstream *services.UpstreamError
	var fileErr *services.FileError
	var archiveErr *services.ArchiveError
	switch {
	case errors.As(err, &upstream):
		return "API Error"
	case errors.As(err, &fileErr):
		return "File Error"
	case errors.As(err, &archiveErr):
		return "Archive Error"
	case errors.Is(err, services.ErrNoCityFound), errors.Is(err, services.ErrNoPlaces):
		return "No Results"
	case errors.Is(err, services.ErrNoCitySelected):
		return "No City Selected"
	case errors.Is(err, services.ErrNoSelection):
		return "No Selection"
	case errors.Is(err, services.ErrNoResults):
		return "No Places"
	case errors.Is(err, services.ErrArchiveDisabled):
		return "Archive"
	}
	return "Input Error"
}

func showMessage(out io.Writer, title, text string) {
	fmt.Fprintf(out, "[%s] %s\n", title, text)
}
