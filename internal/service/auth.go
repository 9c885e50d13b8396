// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes storage
//
// Handlers only know HTTP; services only know business rules; neither knows
// SQL or the Sheets API. Services receive repository INTERFACES, so tests
// swap in fakes with plain Go values — no HTTP, no database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/weather-hub/internal/apperror"
	"github.com/sakif/weather-hub/internal/auth"
	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/repository"
)

// MinPasswordLength is the signup password floor.
const MinPasswordLength = 6

// validate is shared by all service methods. A validator.Validate is
// goroutine-safe and caches struct metadata, so one instance is the norm.
var validate = validator.New()

// credentials is the validated shape of a signup/login request.
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// AuthService orchestrates signup, login, and profile lookup.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginResult bundles what the login handler needs to respond: the signed
// token and the email it was issued for. Note there is no LoginResult from
// Signup — creating an account never auto-logs-in; login is an explicit
// second step.
type LoginResult struct {
	Token string
	Email string
}

// Signup creates a new account.
//
// Rules: the email must be syntactically valid, the password at least 6
// characters. An existing email fails with the duplicate-account kind.
//
// KNOWN RACE: the existence check and the insert are two operations with no
// lock between them. Two concurrent signups for the same email can both
// pass the check; the users.email UNIQUE constraint then rejects the second
// insert, and that request sees a generic persistence error rather than the
// duplicate-account error. Accepted: the constraint is the backstop, the
// check is just the friendly fast path.
func (s *AuthService) Signup(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return fmt.Errorf("service/auth: signup %s: %w", email, apperror.DuplicateAccount())
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("service/auth: checking existing account: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("service/auth: creating account: %w", err)
	}

	s.logger.Info("account created", slog.String("userID", user.ID))
	return nil
}

// Login verifies credentials and issues a session token.
//
// The three failure kinds stay distinct internally — tests assert them with
// errors.Is — even though the HTTP layer collapses all of them to 401:
//   - no such account    → ErrAccountNotFound ("Please signup first")
//   - wrong password     → ErrInvalidCredential
//   - deactivated account → ErrAccountInactive
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: login: %w", apperror.AccountNotFound())
	}
	if err != nil {
		return nil, fmt.Errorf("service/auth: looking up account: %w", err)
	}

	if !s.passwords.Verify(user.PasswordHash, password) {
		return nil, fmt.Errorf("service/auth: login %s: %w", user.ID, apperror.InvalidCredential())
	}

	if !user.IsActive {
		return nil, fmt.Errorf("service/auth: login %s: %w", user.ID, apperror.AccountInactive())
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &LoginResult{Token: token, Email: user.Email}, nil
}

// GetUserByEmail returns the account for the given email. Used by the
// profile endpoint after the auth middleware has resolved the token.
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, fmt.Errorf("service/auth: email must not be empty")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user: %w", err)
	}
	return user, nil
}

// validateCredentials maps validator failures onto the validation error
// kind with a field-specific message.
func validateCredentials(email, password string) error {
	err := validate.Struct(credentials{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Email":
			return apperror.ValidationFailed("email", "A valid email address is required")
		case "Password":
			return apperror.ValidationFailed("password",
				fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
		}
	}
	return apperror.ValidationFailed("", "Invalid signup request")
}
