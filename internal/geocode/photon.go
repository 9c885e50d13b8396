package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/upstream"
)

// DefaultPhotonURL is the public Photon endpoint (free, no API key).
const DefaultPhotonURL = "https://photon.komoot.io/api/"

// PhotonProvider geocodes through Photon (photon.komoot.io), the primary
// provider. Photon is backed by OpenStreetMap and handles villages and
// small places well, which is why it goes first.
type PhotonProvider struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewPhotonProvider creates a PhotonProvider against baseURL (tests point
// this at an httptest server).
func NewPhotonProvider(baseURL string, client *http.Client) *PhotonProvider {
	return &PhotonProvider{
		baseURL: baseURL,
		client:  client,
		circuit: upstream.NewBreaker("photon"),
	}
}

func (p *PhotonProvider) Name() string { return "photon" }

// photonResponse mirrors the GeoJSON FeatureCollection Photon returns.
// Coordinates are [lon, lat] — GeoJSON order, the reverse of the usual
// lat/lon convention.
type photonResponse struct {
	Features []struct {
		Properties struct {
			Name    string `json:"name"`
			Country string `json:"country"`
			State   string `json:"state"`
			Type    string `json:"type"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Search queries Photon and maps each feature into a Location. Features
// without a usable coordinate pair are skipped.
func (p *PhotonProvider) Search(ctx context.Context, query string, limit int) ([]model.Location, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))

	resp, err := upstream.Get(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("photon: %w", err)
	}
	defer resp.Body.Close()

	var payload photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("photon: decoding response: %w", err)
	}

	locations := make([]model.Location, 0, len(payload.Features))
	for _, f := range payload.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}

		name := f.Properties.Name
		if name == "" {
			name = "Unknown"
		}
		placeType := f.Properties.Type
		if placeType == "" {
			placeType = "location"
		}

		locations = append(locations, model.Location{
			Name:    name,
			Country: f.Properties.Country,
			State:   f.Properties.State,
			Lat:     f.Geometry.Coordinates[1],
			Lon:     f.Geometry.Coordinates[0],
			Type:    placeType,
		})
	}

	return locations, nil
}
