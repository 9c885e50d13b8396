package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/weather-hub/internal/apperror"
	"github.com/sakif/weather-hub/internal/model"
)

// Geocoder resolves free-text place names to coordinates.
// *geocode.Resolver is the production implementation.
type Geocoder interface {
	Resolve(ctx context.Context, query string, limit int) ([]model.Location, error)
}

// Forecaster fetches normalized weather for a resolved location.
// *weather.Client is the production implementation.
type Forecaster interface {
	Current(ctx context.Context, loc model.Location) (*model.WeatherSnapshot, error)
	Hourly(ctx context.Context, loc model.Location) ([]model.HourlyPoint, error)
	Daily(ctx context.Context, loc model.Location) ([]model.DailyPoint, error)
}

// WeatherService orchestrates the weather-fetch path: resolve the city name
// to coordinates first, then fetch and normalize the forecast.
type WeatherService struct {
	geocoder Geocoder
	forecast Forecaster
	logger   *slog.Logger
}

func NewWeatherService(geocoder Geocoder, forecast Forecaster, logger *slog.Logger) *WeatherService {
	return &WeatherService{
		geocoder: geocoder,
		forecast: forecast,
		logger:   logger,
	}
}

// Current returns current conditions for a free-text city name.
// An unresolvable city is a 404-class not-found, never a 500.
func (s *WeatherService) Current(ctx context.Context, city string) (*model.WeatherSnapshot, error) {
	loc, err := s.resolveOne(ctx, city)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.forecast.Current(ctx, *loc)
	if err != nil {
		return nil, fmt.Errorf("service/weather: current for %q: %w", city, err)
	}
	return snapshot, nil
}

// Hourly returns the 48-hour forecast for a free-text city name.
func (s *WeatherService) Hourly(ctx context.Context, city string) ([]model.HourlyPoint, error) {
	loc, err := s.resolveOne(ctx, city)
	if err != nil {
		return nil, err
	}
	forecast, err := s.forecast.Hourly(ctx, *loc)
	if err != nil {
		return nil, fmt.Errorf("service/weather: hourly for %q: %w", city, err)
	}
	return forecast, nil
}

// Daily returns the 7-day forecast for a free-text city name.
func (s *WeatherService) Daily(ctx context.Context, city string) ([]model.DailyPoint, error) {
	loc, err := s.resolveOne(ctx, city)
	if err != nil {
		return nil, err
	}
	forecast, err := s.forecast.Daily(ctx, *loc)
	if err != nil {
		return nil, fmt.Errorf("service/weather: daily for %q: %w", city, err)
	}
	return forecast, nil
}

// Geocode exposes raw location resolution (the /api/geocode endpoint).
// Unlike the weather paths, an empty result is returned as-is — the caller
// gets an empty list, not a 404.
func (s *WeatherService) Geocode(ctx context.Context, query string, limit int) ([]model.Location, error) {
	if limit <= 0 {
		limit = 5
	}
	locations, err := s.geocoder.Resolve(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("service/weather: geocoding %q: %w", query, err)
	}
	return locations, nil
}

// resolveOne geocodes the city and picks the best (first) match.
func (s *WeatherService) resolveOne(ctx context.Context, city string) (*model.Location, error) {
	locations, err := s.geocoder.Resolve(ctx, city, 1)
	if err != nil {
		return nil, fmt.Errorf("service/weather: resolving %q: %w", city, err)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("service/weather: %w",
			apperror.NotFound(fmt.Sprintf("Location '%s' not found", city)))
	}
	return &locations[0], nil
}
