package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/service"
)

// WeatherHandler exposes the weather-fetch and history endpoints:
//
//	GET  /api/weather/{city}          → current conditions
//	GET  /api/forecast/hourly/{city}  → 48-hour forecast
//	GET  /api/forecast/daily/{city}   → 7-day forecast
//	GET  /api/geocode/{query}         → location search
//	POST /api/weather/save            → append to history sink (protected)
//	GET  /api/weather/history         → read history sink (protected)
//
// history may be nil when the Sheets sink isn't configured; the two history
// endpoints then respond 500 with an explanatory message and everything
// else keeps working.
type WeatherHandler struct {
	weather *service.WeatherService
	history *service.HistoryService
	logger  *slog.Logger
}

func NewWeatherHandler(weather *service.WeatherService, history *service.HistoryService, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{weather: weather, history: history, logger: logger}
}

type weatherResponse struct {
	Success bool                   `json:"success"`
	Data    *model.WeatherSnapshot `json:"data"`
}

type cityForecastResponse struct {
	Success bool        `json:"success"`
	City    string      `json:"city"`
	Data    interface{} `json:"data"`
}

type geocodeResponse struct {
	Success bool             `json:"success"`
	Query   string           `json:"query"`
	Data    []model.Location `json:"data"`
}

type historyResponse struct {
	Success bool                  `json:"success"`
	Data    []model.HistoryRecord `json:"data"`
}

// HandleCurrent returns current conditions for a city.
//
// HTTP: GET /api/weather/{city}
//
// An unresolvable city is 404; a dead weather provider is 500. The service
// layer already encodes that distinction in the error kinds.
func (h *WeatherHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	snapshot, err := h.weather.Current(r.Context(), city)
	if err != nil {
		h.logger.Warn("weather fetch failed",
			slog.String("city", city),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, weatherResponse{Success: true, Data: snapshot})
}

// HandleHourly returns the 48-hour forecast for a city.
//
// HTTP: GET /api/forecast/hourly/{city}
func (h *WeatherHandler) HandleHourly(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	forecast, err := h.weather.Hourly(r.Context(), city)
	if err != nil {
		h.logger.Warn("hourly forecast failed",
			slog.String("city", city),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cityForecastResponse{Success: true, City: city, Data: forecast})
}

// HandleDaily returns the 7-day forecast for a city.
//
// HTTP: GET /api/forecast/daily/{city}
func (h *WeatherHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	forecast, err := h.weather.Daily(r.Context(), city)
	if err != nil {
		h.logger.Warn("daily forecast failed",
			slog.String("city", city),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cityForecastResponse{Success: true, City: city, Data: forecast})
}

// HandleGeocode resolves a free-text place query.
//
// HTTP: GET /api/geocode/{query}?limit=5
//
// Zero matches is a successful response with an empty list, not a 404 —
// the search itself worked.
func (h *WeatherHandler) HandleGeocode(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	limit := 5
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	locations, err := h.weather.Geocode(r.Context(), query, limit)
	if err != nil {
		h.logger.Warn("geocoding failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, geocodeResponse{Success: true, Query: query, Data: locations})
}

// HandleSave appends a weather record to the history sink.
//
// HTTP: POST /api/weather/save
// Auth: required
func (h *WeatherHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusInternalServerError,
			ErrorResponse{Detail: "History storage is not configured"})
		return
	}

	var rec model.HistoryRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body"})
		return
	}

	if err := h.history.Save(r.Context(), rec); err != nil {
		h.logger.Error("history save failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Weather data saved to Google Sheets successfully",
	})
}

// HandleHistory returns recent saved records, newest first.
//
// HTTP: GET /api/weather/history?limit=50
// Auth: required
func (h *WeatherHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusInternalServerError,
			ErrorResponse{Detail: "History storage is not configured"})
		return
	}

	limit := service.DefaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.history.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("history read failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{Success: true, Data: records})
}
