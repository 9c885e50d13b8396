package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/weather-hub/internal/auth"
	"github.com/sakif/weather-hub/internal/service"
)

// AuthHandler exposes the account endpoints:
//
//	POST /api/auth/signup  → create an account (does NOT log in)
//	POST /api/auth/login   → verify credentials, issue a bearer token
//	GET  /api/auth/me      → current user's profile (protected)
//	POST /api/auth/logout  → stateless no-op, for client symmetry
type AuthHandler struct {
	accounts *service.AuthService
	logger   *slog.Logger
}

func NewAuthHandler(accounts *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
	Message     string `json:"message"`
}

type profileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// HandleSignup creates a new account and responds 201.
//
// HTTP: POST /api/auth/signup
//
// Success deliberately returns only a message — no token, no user record.
// Logging in is a separate explicit step.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body"})
		return
	}

	if err := h.accounts.Signup(r.Context(), req.Email, req.Password); err != nil {
		h.logger.Warn("signup failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Success: true,
		Message: fmt.Sprintf("Account created successfully! Please login with %s", req.Email),
	})
}

// HandleLogin verifies credentials and returns a bearer token.
//
// HTTP: POST /api/auth/login
//
// All three failure kinds come back as 401; only the detail message (and
// internal sentinels) differ.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Invalid request body"})
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		Email:       result.Email,
		Message:     "Login successful!",
	})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/auth/me
// Auth: required — RequireAuth has already resolved the user into context.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Detail: "Could not validate credentials"})
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}

// HandleLogout acknowledges a logout.
//
// HTTP: POST /api/auth/logout
//
// Sessions are stateless JWTs — there is no server-side record to clear.
// The token stays technically valid until it expires; the client simply
// discards it. This endpoint exists so clients have something to call.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Logout successful! Please remove token from client.",
	})
}
