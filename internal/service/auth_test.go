package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/sakif/weather-hub/internal/apperror"
	"github.com/sakif/weather-hub/internal/auth"
	"github.com/sakif/weather-hub/internal/model"
)

// fakeUserRepo is an in-memory repository.UserRepository keyed by email.
type fakeUserRepo struct {
	users   map[string]*model.User
	nextID  int
	failGet error // when set, GetByEmail returns this instead of looking up
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := f.users[user.Email]; exists {
		return apperror.Persistence("inserting user", errors.New("UNIQUE constraint failed: users.email"))
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	u, ok := f.users[email]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAuthService wires an AuthService over the fake repo with a fast
// bcrypt cost and a fixed test secret.
func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *auth.TokenService) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens, err := auth.NewTokenService("test-secret-thats-long-enough")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	svc := NewAuthService(repo, tokens, auth.NewPasswordServiceForTest(4), discardLogger())
	return svc, repo, tokens
}

// =========================================================================
// SIGNUP TESTS
// =========================================================================

func TestSignup(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	if err := svc.Signup(context.Background(), "new@example.com", "password123"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	stored := repo.users["new@example.com"]
	if stored == nil {
		t.Fatal("Signup() did not store the account")
	}
	if !stored.IsActive {
		t.Error("new accounts must start active")
	}
	if stored.PasswordHash == "password123" || stored.PasswordHash == "" {
		t.Error("password must be stored as a hash, never plaintext")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "taken@example.com", "password123"); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}

	err := svc.Signup(ctx, "taken@example.com", "different-pass")
	if !errors.Is(err, apperror.ErrDuplicate) {
		t.Errorf("duplicate Signup() error = %v, want ErrDuplicate", err)
	}
}

func TestSignup_DuplicateLeavesAccountUntouched(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "keep@example.com", "original-pass"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	before := *repo.users["keep@example.com"]

	_ = svc.Signup(ctx, "keep@example.com", "attacker-pass")

	after := repo.users["keep@example.com"]
	if after.PasswordHash != before.PasswordHash || after.ID != before.ID {
		t.Error("duplicate signup altered the existing account")
	}
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"malformed email", "not-an-email", "password123"},
		{"empty email", "", "password123"},
		{"short password", "ok@example.com", "12345"},
		{"empty password", "ok@example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Signup(ctx, tc.email, tc.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Signup(%q, %q) error = %v, want ErrValidation", tc.email, tc.password, err)
			}
		})
	}
}

func TestSignup_MinLengthPasswordAccepted(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	// Exactly 6 characters is the boundary and must pass.
	if err := svc.Signup(context.Background(), "six@example.com", "123456"); err != nil {
		t.Errorf("Signup() with 6-char password error = %v, want nil", err)
	}
}

func TestSignup_RepoFailurePropagates(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	repo.failGet = apperror.Persistence("db gone", errors.New("disk error"))

	err := svc.Signup(context.Background(), "any@example.com", "password123")
	if !errors.Is(err, apperror.ErrPersistence) {
		t.Errorf("Signup() error = %v, want the persistence failure, not ErrDuplicate", err)
	}
	if errors.Is(err, apperror.ErrDuplicate) {
		t.Error("a repo failure must not be mistaken for a duplicate account")
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_RoundTrip(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "user@example.com", "password123"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	result, err := svc.Login(ctx, "user@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", result.Email)
	}

	// The issued token must validate back to the same identity.
	subject, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if subject != "user@example.com" {
		t.Errorf("token subject = %q, want user@example.com", subject)
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, apperror.ErrAccountNotFound) {
		t.Errorf("Login() error = %v, want ErrAccountNotFound", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "user@example.com", "password123"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	_, err := svc.Login(ctx, "user@example.com", "wrong-password")
	if !errors.Is(err, apperror.ErrInvalidCredential) {
		t.Errorf("Login() error = %v, want ErrInvalidCredential", err)
	}
	// A wrong password on an existing account must never look like a
	// missing account.
	if errors.Is(err, apperror.ErrAccountNotFound) {
		t.Error("wrong password reported as account-not-found")
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "frozen@example.com", "password123"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	repo.users["frozen@example.com"].IsActive = false

	// The password is correct; deactivation alone must block the login.
	_, err := svc.Login(ctx, "frozen@example.com", "password123")
	if !errors.Is(err, apperror.ErrAccountInactive) {
		t.Errorf("Login() error = %v, want ErrAccountInactive", err)
	}
}

// =========================================================================
// PROFILE LOOKUP
// =========================================================================

func TestGetUserByEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Signup(ctx, "me@example.com", "password123"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	user, err := svc.GetUserByEmail(ctx, "me@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if user.Email != "me@example.com" {
		t.Errorf("Email = %q, want me@example.com", user.Email)
	}
}

func TestGetUserByEmail_Empty(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if _, err := svc.GetUserByEmail(context.Background(), ""); err == nil {
		t.Error("GetUserByEmail(\"\") should fail")
	}
}
