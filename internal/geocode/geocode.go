// Package geocode resolves free-text place names to coordinates.
//
// WHY TWO PROVIDERS?
// Free-text place queries — especially small villages — are unreliable
// against a single geocoder. The resolver tries Photon first (better
// village coverage), and if it errors or returns nothing, falls back to
// Nominatim, whose differently-shaped response is mapped into the same
// Location schema. Provider ordering IS the resilience strategy: each
// provider is tried at most once, there is no retry-with-backoff.
package geocode

import (
	"context"
	"log/slog"

	"github.com/sakif/weather-hub/internal/apperror"
	"github.com/sakif/weather-hub/internal/model"
)

// Provider is one geocoding backend.
//
// Returning (empty, nil) means the provider answered but found nothing;
// returning an error means the provider itself failed (transport, parse,
// non-2xx). The resolver treats both as reasons to try the next provider,
// but only a failure of the LAST provider becomes an upstream error.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]model.Location, error)
}

// Resolver tries an ordered list of providers, short-circuiting on the
// first non-empty result.
type Resolver struct {
	providers []Provider
	logger    *slog.Logger
}

// NewResolver creates a Resolver over the given providers, tried in order.
func NewResolver(logger *slog.Logger, providers ...Provider) *Resolver {
	return &Resolver{providers: providers, logger: logger}
}

// Resolve returns up to limit locations for the query.
//
// An empty (non-nil-error) result from every provider yields an empty slice
// — the place genuinely doesn't resolve, which callers map to 404. A
// transport/parse failure from the final provider yields an upstream error
// (500): at that point we can't tell whether the place exists.
func (r *Resolver) Resolve(ctx context.Context, query string, limit int) ([]model.Location, error) {
	var lastErr error

	for _, p := range r.providers {
		locations, err := p.Search(ctx, query, limit)
		if err != nil {
			r.logger.Warn("geocoding provider failed, trying next",
				slog.String("provider", p.Name()),
				slog.String("query", query),
				slog.String("error", err.Error()),
			)
			lastErr = err
			continue
		}
		if len(locations) == 0 {
			r.logger.Debug("geocoding provider returned no results",
				slog.String("provider", p.Name()),
				slog.String("query", query),
			)
			lastErr = nil
			continue
		}
		return locations, nil
	}

	// The outcome of the last provider consulted decides: if it failed we
	// can't tell whether the place exists, so surface an upstream error.
	if lastErr != nil {
		return nil, apperror.Upstream("Geocoding failed", lastErr)
	}

	// Every provider answered and none knew the place.
	return []model.Location{}, nil
}
