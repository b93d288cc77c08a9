package storage

import (
	"context"

	"github.com/dmitrijs2005/oktasync/internal/models"
)

// Repository describes the operations over the mirrored user directory.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// GetByID returns the record with the given user id, or
	// common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.UserRecord, error)

	// GetByEmail returns the record with the given profile email, matched
	// case-insensitively, or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.UserRecord, error)

	// Upsert atomically writes the user, profile and type rows of rec.
	// It reports false when the stored record is at least as recent
	// (by updated_at) and nothing was changed.
	Upsert(ctx context.Context, rec *models.UserRecord) (bool, error)

	// Delete removes the user and its profile. Missing ids return
	// common.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ListPage returns up to limit records ordered by user id, skipping
	// offset records.
	ListPage(ctx context.Context, offset, limit int) ([]models.UserRecord, error)

	// Count returns the number of mirrored users.
	Count(ctx context.Context) (int, error)
}
