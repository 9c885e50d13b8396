package geocode

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sakif/weather-hub/internal/apperror"
)

// Canned provider payloads. Photon speaks GeoJSON (coordinates are
// [lon, lat]); Nominatim returns a flat array with a composite
// display_name and stringly-typed coordinates.
const parisPhoton = `{
	"features": [{
		"properties": {"name": "Paris", "country": "France", "state": "Île-de-France", "type": "city"},
		"geometry": {"coordinates": [2.3483915, 48.8534951]}
	}]
}`

const parisNominatim = `[{
	"display_name": "Paris, Île-de-France, Metropolitan France, France",
	"lat": "48.8534951",
	"lon": "2.3483915",
	"type": "city"
}]`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

// jsonServer returns an httptest server that always answers with body.
func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// failingServer answers 500 to everything.
func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestResolver(t *testing.T, photonBody, nominatimBody string) *Resolver {
	t.Helper()
	photon := jsonServer(t, photonBody)
	nominatim := jsonServer(t, nominatimBody)
	return NewResolver(testLogger(),
		NewPhotonProvider(photon.URL, testClient()),
		NewNominatimProvider(nominatim.URL, testClient()),
	)
}

// =========================================================================
// RESOLVE — HAPPY PATH
// =========================================================================

func TestResolve_PhotonFirst(t *testing.T) {
	r := newTestResolver(t, parisPhoton, `[]`)

	locations, err := r.Resolve(context.Background(), "Paris", 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(locations) == 0 {
		t.Fatal("Resolve() returned no locations")
	}

	loc := locations[0]
	if loc.Name != "Paris" {
		t.Errorf("Name = %q, want %q", loc.Name, "Paris")
	}
	if loc.Country != "France" {
		t.Errorf("Country = %q, want %q", loc.Country, "France")
	}
	if loc.State != "Île-de-France" {
		t.Errorf("State = %q, want %q", loc.State, "Île-de-France")
	}
	// GeoJSON coordinate order is [lon, lat] — make sure we didn't swap.
	if loc.Lat < 48 || loc.Lat > 49 {
		t.Errorf("Lat = %f, want ~48.85 (lon/lat swapped?)", loc.Lat)
	}
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lon < -180 || loc.Lon > 180 {
		t.Errorf("coordinates out of bounds: lat=%f lon=%f", loc.Lat, loc.Lon)
	}
}

// =========================================================================
// RESOLVE — FALLBACK
// =========================================================================

func TestResolve_FallsBackWhenPhotonEmpty(t *testing.T) {
	r := newTestResolver(t, `{"features": []}`, parisNominatim)

	locations, err := r.Resolve(context.Background(), "Paris", 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("len(locations) = %d, want 1 (from Nominatim)", len(locations))
	}

	// Nominatim has no discrete fields: name is the first comma segment of
	// display_name, country the last.
	loc := locations[0]
	if loc.Name != "Paris" {
		t.Errorf("Name = %q, want %q (first display_name segment)", loc.Name, "Paris")
	}
	if loc.Country != "France" {
		t.Errorf("Country = %q, want %q (last display_name segment)", loc.Country, "France")
	}
	if loc.Lat == 0 || loc.Lon == 0 {
		t.Errorf("string coordinates not parsed: lat=%f lon=%f", loc.Lat, loc.Lon)
	}
}

func TestResolve_FallsBackWhenPhotonFails(t *testing.T) {
	photon := failingServer(t)
	nominatim := jsonServer(t, parisNominatim)
	r := NewResolver(testLogger(),
		NewPhotonProvider(photon.URL, testClient()),
		NewNominatimProvider(nominatim.URL, testClient()),
	)

	locations, err := r.Resolve(context.Background(), "Paris", 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("len(locations) = %d, want 1 (from Nominatim)", len(locations))
	}
}

func TestResolve_EachProviderTriedOnce(t *testing.T) {
	// Fallback is provider-to-provider, never retry-with-backoff.
	var photonCalls, nominatimCalls int

	photon := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		photonCalls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(photon.Close)
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nominatimCalls++
		w.Write([]byte(parisNominatim))
	}))
	t.Cleanup(nominatim.Close)

	r := NewResolver(testLogger(),
		NewPhotonProvider(photon.URL, testClient()),
		NewNominatimProvider(nominatim.URL, testClient()),
	)

	if _, err := r.Resolve(context.Background(), "Paris", 1); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if photonCalls != 1 || nominatimCalls != 1 {
		t.Errorf("calls = photon:%d nominatim:%d, want 1 each", photonCalls, nominatimCalls)
	}
}

// =========================================================================
// RESOLVE — FAILURE SEMANTICS
// =========================================================================

func TestResolve_BothProvidersFail(t *testing.T) {
	photon := failingServer(t)
	nominatim := failingServer(t)
	r := NewResolver(testLogger(),
		NewPhotonProvider(photon.URL, testClient()),
		NewNominatimProvider(nominatim.URL, testClient()),
	)

	_, err := r.Resolve(context.Background(), "Paris", 1)
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("Resolve() error = %v, want ErrUpstream", err)
	}
}

func TestResolve_BothProvidersEmpty(t *testing.T) {
	// Every provider answered and none knew the place: that's an empty
	// result (callers map it to 404), NOT an upstream failure.
	r := newTestResolver(t, `{"features": []}`, `[]`)

	locations, err := r.Resolve(context.Background(), "Xyzzyville", 5)
	if err != nil {
		t.Fatalf("Resolve() error = %v, want empty success", err)
	}
	if len(locations) != 0 {
		t.Errorf("len(locations) = %d, want 0", len(locations))
	}
}

func TestResolve_PhotonFailsNominatimEmpty(t *testing.T) {
	// The last provider consulted decides: it answered (empty), so the
	// place just doesn't resolve — empty result, not an error.
	photon := failingServer(t)
	nominatim := jsonServer(t, `[]`)
	r := NewResolver(testLogger(),
		NewPhotonProvider(photon.URL, testClient()),
		NewNominatimProvider(nominatim.URL, testClient()),
	)

	locations, err := r.Resolve(context.Background(), "Nowhere", 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v, want empty success", err)
	}
	if len(locations) != 0 {
		t.Errorf("len(locations) = %d, want 0", len(locations))
	}
}

// =========================================================================
// NOMINATIM DISPLAY-NAME SPLITTING
// =========================================================================

func TestSplitDisplayName(t *testing.T) {
	cases := []struct {
		displayName string
		wantName    string
		wantCountry string
	}{
		{"Paris, Île-de-France, Metropolitan France, France", "Paris", "France"},
		{"Berlin, Deutschland", "Berlin", "Deutschland"},
		{"Monaco", "Monaco", "Monaco"}, // no commas: both segments are the whole string
	}

	for _, tc := range cases {
		if got := splitName(tc.displayName); got != tc.wantName {
			t.Errorf("splitName(%q) = %q, want %q", tc.displayName, got, tc.wantName)
		}
		if got := splitCountry(tc.displayName); got != tc.wantCountry {
			t.Errorf("splitCountry(%q) = %q, want %q", tc.displayName, got, tc.wantCountry)
		}
	}
}
