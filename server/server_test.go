package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"venue-scraper/config"
	"venue-scraper/models"
	"venue-scraper/storage"
	"venue-scraper/utils"
)

type stubRunner struct {
	mu       sync.Mutex
	runs     int
	cityRuns []string

	progress *models.RunProgress
	runErr   error
	cityRes  map[string]models.CityResult

	entered chan struct{} // closed when Run is entered, when non-nil
	release chan struct{} // Run blocks on this, when non-nil
}

func (r *stubRunner) Run(_ context.Context) (*models.RunProgress, error) {
	r.mu.Lock()
	r.runs++
	if r.entered != nil {
		close(r.entered)
		r.entered = nil
	}
	release := r.release
	r.mu.Unlock()

	if release != nil {
		<-release
	}
	if r.progress == nil {
		return &models.RunProgress{}, r.runErr
	}
	return r.progress, r.runErr
}

func (r *stubRunner) RunCity(_ context.Context, city string) models.CityResult {
	r.mu.Lock()
	r.cityRuns = append(r.cityRuns, city)
	r.mu.Unlock()

	if res, ok := r.cityRes[city]; ok {
		return res
	}
	return models.CityResult{City: city}
}

func serverVenue(name string) models.VenueRecord {
	rec := models.NewVenueRecord()
	rec.Name = name
	rec.City = "pune"
	rec.SourceURL = "https://example.com/v/" + name
	return rec
}

func newTestServer(t *testing.T, runner *stubRunner) (*Server, *storage.Store) {
	t.Helper()
	cfg := &config.Config{OutputDir: t.TempDir(), Port: "0"}
	logger := utils.NewLogger(false)
	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return New(context.Background(), cfg, logger, runner, store), store
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &stubRunner{})

	rec := doRequest(s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["status"] != "ok" {
		t.Errorf("body: got %v", body)
	}
}

func TestDashboardServesHTML(t *testing.T) {
	s, _ := newTestServer(t, &stubRunner{})

	rec := doRequest(s, http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Venue Scraper") {
		t.Errorf("dashboard body does not look like the dashboard")
	}
}

func TestStatusBeforeFirstRun(t *testing.T) {
	s, _ := newTestServer(t, &stubRunner{})

	rec := doRequest(s, http.MethodGet, "/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["last_updated"] != "Never" {
		t.Errorf("last_updated: got %v, want Never", body["last_updated"])
	}
	if running, _ := body["running"].(bool); running {
		t.Errorf("running: got true before any run")
	}
	if body["total_venues"] != float64(0) {
		t.Errorf("total_venues: got %v, want 0", body["total_venues"])
	}
}

func TestStatusReflectsPersistedRun(t *testing.T) {
	s, store := newTestServer(t, &stubRunner{})

	progress := &models.RunProgress{}
	progress.Apply(models.CityResult{City: "pune", Records: []models.VenueRecord{serverVenue("Alpha Arena")}})
	if err := store.Persist(progress); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	body := decodeBody(t, doRequest(s, http.MethodGet, "/status"))
	if body["total_venues"] != float64(1) {
		t.Errorf("total_venues: got %v, want 1", body["total_venues"])
	}
	scraped, _ := body["scraped_cities"].([]any)
	if len(scraped) != 1 || scraped[0] != "pune" {
		t.Errorf("scraped_cities: got %v, want [pune]", body["scraped_cities"])
	}
}

func TestStartScrapingReportsSummary(t *testing.T) {
	progress := &models.RunProgress{}
	progress.Apply(models.CityResult{City: "pune", Records: []models.VenueRecord{serverVenue("Alpha Arena")}})
	runner := &stubRunner{progress: progress}
	s, _ := newTestServer(t, runner)

	rec := doRequest(s, http.MethodPost, "/start_scraping")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["total_venues"] != float64(1) {
		t.Errorf("total_venues: got %v, want 1", body["total_venues"])
	}
	if runner.runs != 1 {
		t.Errorf("runs: got %d, want 1", runner.runs)
	}
}

func TestStartScrapingRunFailure(t *testing.T) {
	runner := &stubRunner{runErr: errors.New("run produced no data")}
	s, _ := newTestServer(t, runner)

	rec := doRequest(s, http.MethodPost, "/start_scraping")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "no data") {
		t.Errorf("error: got %q", msg)
	}
}

func TestStartScrapingConflict(t *testing.T) {
	runner := &stubRunner{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s, _ := newTestServer(t, runner)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- doRequest(s, http.MethodPost, "/start_scraping") }()

	<-runner.entered
	if rec := doRequest(s, http.MethodPost, "/start_scraping"); rec.Code != http.StatusConflict {
		t.Errorf("overlapping trigger: got %d, want 409", rec.Code)
	}

	close(runner.release)
	if rec := <-done; rec.Code != http.StatusOK {
		t.Errorf("first trigger: got %d, want 200", rec.Code)
	}
	if runner.runs != 1 {
		t.Errorf("runs: got %d, want 1", runner.runs)
	}
}

func TestTestCityLowercasesAndSamples(t *testing.T) {
	var records []models.VenueRecord
	for i := 0; i < 5; i++ {
		records = append(records, serverVenue(fmt.Sprintf("venue-%d", i)))
	}
	runner := &stubRunner{cityRes: map[string]models.CityResult{
		"pune": {City: "pune", Records: records},
	}}
	s, _ := newTestServer(t, runner)

	rec := doRequest(s, http.MethodPost, "/test_city/Pune")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if len(runner.cityRuns) != 1 || runner.cityRuns[0] != "pune" {
		t.Errorf("cityRuns: got %v, want [pune]", runner.cityRuns)
	}
	body := decodeBody(t, rec)
	if body["venues_found"] != float64(5) {
		t.Errorf("venues_found: got %v, want 5", body["venues_found"])
	}
	sample, _ := body["sample"].([]any)
	if len(sample) != 3 {
		t.Errorf("sample: got %d records, want 3", len(sample))
	}
}

func TestTestCityFailure(t *testing.T) {
	runner := &stubRunner{cityRes: map[string]models.CityResult{
		"pune": {City: "pune", Err: errors.New("navigation failed")},
	}}
	s, _ := newTestServer(t, runner)

	rec := doRequest(s, http.MethodPost, "/test_city/pune")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
}

func TestDownloadCSVMissing(t *testing.T) {
	s, _ := newTestServer(t, &stubRunner{})

	rec := doRequest(s, http.MethodGet, "/download_csv")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestDownloadCSVServesExport(t *testing.T) {
	s, store := newTestServer(t, &stubRunner{})

	progress := &models.RunProgress{}
	progress.Apply(models.CityResult{City: "pune", Records: []models.VenueRecord{serverVenue("Alpha Arena")}})
	if err := store.Persist(progress); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	rec := doRequest(s, http.MethodGet, "/download_csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "venues_data.csv") {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Alpha Arena") {
		t.Errorf("export body is missing the persisted record")
	}
}
