package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/repository"
)

var errUnauthorized = errors.New("auth: unauthorized")

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. With a plain string key, ANY
// package that knows the string could read or shadow the value. A
// package-private key type means only this package can set or get it.
type contextKey string

const userKey contextKey = "user"

// RequireAuth enforces authentication on protected routes.
//
// It reads the token from the Authorization header ("Bearer <token>"),
// validates the JWT, resolves the subject email to a stored user, and
// rejects with 401 unless the account exists and is active. On success the
// resolved *model.User is stored in the request context.
//
// Missing header, invalid/expired token, unknown subject, and inactive
// account all get the exact same response body — internally different,
// externally indistinguishable, so the endpoint can't be used as an oracle
// for which accounts exist.
//
// This is a pure gate: it never writes anything except the 401.
func RequireAuth(tokens *TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveUser(r, tokens, users)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Could not validate credentials"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user from the request context.
//
// Returns (nil, false) on routes that aren't behind RequireAuth (or if the
// middleware never ran). On a protected route the bool is always true.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

// resolveUser extracts the bearer token, validates it, and loads the user.
func resolveUser(r *http.Request, tokens *TokenService, users repository.UserRepository) (*model.User, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, errUnauthorized
	}

	email, err := tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	// A valid signature is not enough: the subject must still resolve to a
	// live account. A deleted or deactivated user holds a useless token.
	user, err := users.GetByEmail(r.Context(), email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errUnauthorized
	}

	return user, nil
}
