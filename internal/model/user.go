// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Identity is email/password — the email is the unique external identifier
// and is stored exactly as submitted (case-sensitive). We still generate our
// own internal string ID (xid) so primary keys don't depend on a mutable
// user-facing value.
//
// WHY PasswordHash json:"-"?
// The bcrypt hash must never appear in an API response. Tagging the field
// with "-" means encoding/json skips it entirely, so even a careless
// writeJSON(w, 200, user) cannot leak it.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"` // bcrypt hash, never serialized
	IsActive     bool      `json:"is_active"  db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
