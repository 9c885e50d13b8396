package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/weather-hub/internal/apperror"
	"github.com/sakif/weather-hub/internal/model"
	"github.com/sakif/weather-hub/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user row.
//
// The caller (AuthService.Signup) has already checked for an existing email,
// but that check-then-insert is racy. When two concurrent signups slip past
// the check, the UNIQUE(email) constraint rejects the loser here, and we
// surface that as a persistence error — not as a duplicate-account error,
// because by the time we see it the request is past the duplicate check.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = xid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, boolToInt(user.IsActive), user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Persistence("Failed to create account", err)
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.ID, err)
	}

	return nil
}

// GetByEmail returns the user with the exact email, or ErrNotFound.
// Emails are compared case-sensitively, exactly as stored.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getOne(ctx,
		`SELECT id, email, password_hash, is_active, created_at FROM users WHERE email = ?`,
		email,
	)
}

// GetByID returns the user with the given internal ID, or ErrNotFound.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return db.getOne(ctx,
		`SELECT id, email, password_hash, is_active, created_at FROM users WHERE id = ?`,
		id,
	)
}

func (db *DB) getOne(ctx context.Context, query, arg string) (*model.User, error) {
	var (
		user   model.User
		active int
	)
	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &active, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying user: %w", err)
	}

	user.IsActive = active != 0
	return &user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite doesn't export a typed error for this, so we match the
// stable message SQLite produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
