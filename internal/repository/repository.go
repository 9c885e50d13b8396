// Package repository defines the storage interfaces the service layer
// depends on. Concrete backends live in subpackages (sqlite) or sibling
// packages (sheets); services only ever see these interfaces.
package repository

import (
	"context"

	"github.com/sakif/weather-hub/internal/model"
)

// UserRepository is the contract for the account store.
//
// GetByEmail returns apperror.ErrNotFound (wrapped) when no account matches;
// callers translate that into the taxonomy kind that fits their operation
// (signup: fine, login: "please signup first").
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// HistoryRepository is the append-only sink for saved weather queries.
// List returns the most recent records first, at most limit of them.
type HistoryRepository interface {
	Append(ctx context.Context, rec model.HistoryRecord) error
	List(ctx context.Context, limit int) ([]model.HistoryRecord, error)
}
