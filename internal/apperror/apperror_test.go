package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// =========================================================================
// CLASSIFICATION TESTS
// =========================================================================

func TestConstructors_MatchSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", ValidationFailed("email", "bad email"), ErrValidation},
		{"duplicate", DuplicateAccount(), ErrDuplicate},
		{"account not found", AccountNotFound(), ErrAccountNotFound},
		{"invalid credential", InvalidCredential(), ErrInvalidCredential},
		{"account inactive", AccountInactive(), ErrAccountInactive},
		{"invalid token", InvalidToken(), ErrInvalidToken},
		{"not found", NotFound("nope"), ErrNotFound},
		{"upstream", Upstream("provider down", errors.New("boom")), ErrUpstream},
		{"persistence", Persistence("sheet gone", errors.New("boom")), ErrPersistence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tc.err)
			}
		})
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	// Services wrap AppErrors with context; classification must survive.
	wrapped := fmt.Errorf("service/auth: login: %w", InvalidCredential())

	if !errors.Is(wrapped, ErrInvalidCredential) {
		t.Error("errors.Is lost the sentinel through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As failed to extract *AppError through wrapping")
	}
	if appErr.Message != "Invalid password" {
		t.Errorf("Message = %q, want %q", appErr.Message, "Invalid password")
	}
}

func TestLoginFailureKinds_AreDistinct(t *testing.T) {
	// The three login failures share a 401 status but must remain
	// distinguishable internally.
	if errors.Is(InvalidCredential(), ErrAccountNotFound) {
		t.Error("InvalidCredential matches ErrAccountNotFound")
	}
	if errors.Is(AccountNotFound(), ErrInvalidCredential) {
		t.Error("AccountNotFound matches ErrInvalidCredential")
	}
	if errors.Is(AccountInactive(), ErrInvalidCredential) {
		t.Error("AccountInactive matches ErrInvalidCredential")
	}
}

func TestUpstream_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("Geocoding failed", cause)

	if !errors.Is(err, cause) {
		t.Error("Upstream() lost the underlying cause")
	}
	if err.Error() != "Geocoding failed" {
		t.Errorf("Error() = %q, want the client-safe message", err.Error())
	}
}
