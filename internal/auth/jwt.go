// Package auth provides JWT session tokens, bcrypt password hashing, and the
// middleware that guards protected routes.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User signs up with email/password → password is bcrypt-hashed and stored
// 2. User logs in → server verifies the hash and issues a JWT access token
// 3. Client sends the token on every request: Authorization: Bearer <token>
// 4. Middleware validates the JWT, loads the user, and puts it in the context
//
// WHY JWT?
// JWT (JSON Web Token) is stateless — the server keeps no session table.
// Everything needed to validate a session (subject, expiry) lives inside the
// signed token, and the HMAC signature ensures nobody can tamper with it
// without the secret key. "Logout" is therefore purely client-side: the
// token stays valid until it expires, the client just stops sending it.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the session token lifetime. Sessions last one day; after that
// the client must log in again.
const tokenTTL = 24 * time.Hour

const issuer = "weather-hub"

// TokenService handles JWT creation and validation.
//
// It holds the HMAC secret key used to sign and verify tokens. The same
// secret must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. It embeds jwt.RegisteredClaims which includes
// the standard fields: Issuer, Subject, ExpiresAt, IssuedAt.
//
// We use "sub" (Subject) to store the user's email — the stable identity
// the account store is keyed by for lookups.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a new JWT access token for the given subject
// (the user's email). Lifetime is 24 hours from issuance.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies. Fine for a single-server deployment.
func (s *TokenService) Generate(subject string) (string, error) {
	return s.GenerateWithDuration(subject, tokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used in tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(subject string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string. Returns the subject (the email
// stored in the "sub" claim) if the token is valid.
//
// A tampered signature, a malformed token, and an expired token all come back
// as the same opaque error — callers (and therefore clients) cannot tell the
// three apart, which avoids leaking anything beyond "invalid". Expiry is
// checked against this process's clock with no skew tolerance.
//
// ALGORITHM CONFUSION ATTACK:
// Without pinning the algorithm, an attacker could present a token signed
// with "none". Passing jwt.WithValidMethods prevents this.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("auth: invalid token")
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token")
	}

	subject := c.Subject
	if subject == "" {
		return "", fmt.Errorf("auth: invalid token")
	}

	return subject, nil
}
