// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the composition root — the one place where the whole
// dependency graph is assembled:
//
//	config → sqlite.DB → repositories
//	       → TokenService / PasswordService → AuthService  → AuthHandler
//	       → Resolver + weather.Client      → WeatherService → WeatherHandler
//	       → sheets.Store (optional)        → HistoryService ↗
//
// Handlers never touch storage directly; services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sakif/weather-hub/internal/auth"
	"github.com/sakif/weather-hub/internal/config"
	"github.com/sakif/weather-hub/internal/geocode"
	"github.com/sakif/weather-hub/internal/handler"
	"github.com/sakif/weather-hub/internal/middleware"
	"github.com/sakif/weather-hub/internal/repository"
	sqliteRepo "github.com/sakif/weather-hub/internal/repository/sqlite"
	"github.com/sakif/weather-hub/internal/service"
	"github.com/sakif/weather-hub/internal/sheets"
	"github.com/sakif/weather-hub/internal/upstream"
	"github.com/sakif/weather-hub/internal/weather"
)

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New wires the full dependency graph and returns a ready-to-start server.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes builds the services and mounts every endpoint.
//
// MIDDLEWARE ORDER MATTERS: RequestID and RealIP first so the logger sees
// them, Recoverer before anything that can panic, CORS outermost of the
// app-level concerns so even error responses carry the headers.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The frontend is served from a separate origin, so CORS is wide open.
	s.router.Use(cors.AllowAll().Handler)

	// === AUTH STACK ===
	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	// === WEATHER STACK ===
	// One shared HTTP client (10s timeout) for all outbound providers;
	// each provider gets its own circuit breaker.
	httpClient := upstream.NewClient()
	resolver := geocode.NewResolver(s.logger,
		geocode.NewPhotonProvider(s.cfg.PhotonURL, httpClient),
		geocode.NewNominatimProvider(s.cfg.NominatimURL, httpClient),
	)
	forecaster := weather.NewClient(s.cfg.WeatherBaseURL, httpClient)
	weatherService := service.NewWeatherService(resolver, forecaster, s.logger)

	// === HISTORY SINK (optional) ===
	var historyService *service.HistoryService
	if s.cfg.HistoryEnabled() {
		var sink repository.HistoryRepository
		sink, err = sheets.New(context.Background(),
			[]byte(s.cfg.GoogleCredentialsJSON), s.cfg.GoogleSheetID)
		if err != nil {
			// Weather still works without the sink: warn loudly, keep serving.
			s.logger.Warn("Google Sheets unavailable — history endpoints disabled",
				slog.String("error", err.Error()),
			)
		} else {
			historyService = service.NewHistoryService(sink, s.logger)
		}
	} else {
		s.logger.Warn("GOOGLE_SHEET_ID/GOOGLE_CREDENTIALS_JSON not set — history endpoints disabled")
	}

	weatherHandler := handler.NewWeatherHandler(weatherService, historyService, s.logger)
	healthHandler := handler.NewHealthHandler()

	requireAuth := auth.RequireAuth(tokens, s.db)

	// === ROUTES ===
	s.router.Get("/", healthHandler.HandleRoot)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/logout", authHandler.HandleLogout)
			r.With(requireAuth).Get("/me", authHandler.HandleMe)
		})

		// Fixed paths before the {city} wildcard so /api/weather/save and
		// /api/weather/history never match as city names.
		r.With(requireAuth).Post("/weather/save", weatherHandler.HandleSave)
		r.With(requireAuth).Get("/weather/history", weatherHandler.HandleHistory)
		r.Get("/weather/{city}", weatherHandler.HandleCurrent)

		r.Get("/forecast/hourly/{city}", weatherHandler.HandleHourly)
		r.Get("/forecast/daily/{city}", weatherHandler.HandleDaily)
		r.Get("/geocode/{query}", weatherHandler.HandleGeocode)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s, then
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
