package handler

import (
	"net/http"
	"time"
)

// HealthHandler serves the service banner and the health probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth responds to liveness checks.
//
// HTTP: GET /api/health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Message:   "API is running",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HandleRoot returns a small banner with the endpoint map, handy when
// poking the API by hand.
//
// HTTP: GET /
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Weather Hub API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":  "/api/health",
			"signup":  "/api/auth/signup",
			"login":   "/api/auth/login",
			"weather": "/api/weather/{city}",
			"hourly":  "/api/forecast/hourly/{city}",
			"daily":   "/api/forecast/daily/{city}",
			"geocode": "/api/geocode/{query}",
			"save":    "/api/weather/save",
			"history": "/api/weather/history",
		},
	})
}
