package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/upstream"
)

// DefaultNominatimURL is the public Nominatim search endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// NominatimProvider is the fallback geocoder.
//
// Nominatim has no discrete name/country fields — just a composite
// display_name like "Paris, Île-de-France, Metropolitan France, France".
// We derive the name from the first comma segment and the country from the
// last. Lat/lon arrive as strings and must be parsed.
type NominatimProvider struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewNominatimProvider(baseURL string, client *http.Client) *NominatimProvider {
	return &NominatimProvider{
		baseURL: baseURL,
		client:  client,
		circuit: upstream.NewBreaker("nominatim"),
	}
}

func (p *NominatimProvider) Name() string { return "nominatim" }

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
}

// Search queries Nominatim. The public instance requires a User-Agent
// identifying the application; requests without one get rejected.
func (p *NominatimProvider) Search(ctx context.Context, query string, limit int) ([]model.Location, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	values.Set("limit", strconv.Itoa(limit))

	header := http.Header{}
	header.Set("User-Agent", "WeatherApp/1.0")

	resp, err := upstream.Get(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("nominatim: %w", err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim: decoding response: %w", err)
	}

	locations := make([]model.Location, 0, len(results))
	for _, item := range results {
		lat, _ := strconv.ParseFloat(item.Lat, 64)
		lon, _ := strconv.ParseFloat(item.Lon, 64)

		placeType := item.Type
		if placeType == "" {
			placeType = "location"
		}

		locations = append(locations, model.Location{
			Name:    splitName(item.DisplayName),
			Country: splitCountry(item.DisplayName),
			State:   "",
			Lat:     lat,
			Lon:     lon,
			Type:    placeType,
		})
	}

	return locations, nil
}

// splitName returns the first comma segment of a display_name.
func splitName(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return name
}

// splitCountry returns the last comma segment of a display_name, trimmed.
func splitCountry(displayName string) string {
	parts := strings.Split(displayName, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
