package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/logging"
	"github.com/dmitrijs2005/oktasync/internal/mapper"
	"github.com/dmitrijs2005/oktasync/internal/models"
	"github.com/dmitrijs2005/oktasync/internal/storage"
)

// Remote is the subset of the directory API the router needs for
// single-record operations.
type Remote interface {
	GetUserByID(ctx context.Context, id string) (*models.RawUser, error)
	GetUserByEmail(ctx context.Context, email string) (*models.RawUser, error)
	UpdateUser(ctx context.Context, id string, profile map[string]any) (*models.RawUser, error)
	DeleteUser(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id string) (string, error)
}

// Source selects which side a read is served from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// ParseSource validates a user-supplied source name.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceLocal, SourceRemote:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown source %q, want local or remote: %w", s, common.ErrValidation)
}

// Selector identifies a user by exactly one of id or profile email.
type Selector struct {
	ID    string
	Email string
}

func (s Selector) validate() error {
	if (s.ID == "") == (s.Email == "") {
		return fmt.Errorf("exactly one of id or email must be given: %w", common.ErrValidation)
	}
	return nil
}

// Users routes user operations between the remote API and the local mirror.
type Users struct {
	remote Remote
	repo   storage.Repository
	log    logging.Logger
}

func NewUsers(remote Remote, repo storage.Repository, log logging.Logger) *Users {
	return &Users{remote: remote, repo: repo, log: log}
}

// Get returns a single user from the chosen source. A remote read is written
// back into the mirror; a failing write-back is logged but does not fail the
// read.
func (s *Users) Get(ctx context.Context, sel Selector, src Source) (*models.UserRecord, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}

	if src == SourceLocal {
		if sel.ID != "" {
			return s.repo.GetByID(ctx, sel.ID)
		}
		return s.repo.GetByEmail(ctx, sel.Email)
	}

	var (
		raw *models.RawUser
		err error
	)
	if sel.ID != "" {
		raw, err = s.remote.GetUserByID(ctx, sel.ID)
	} else {
		raw, err = s.remote.GetUserByEmail(ctx, sel.Email)
	}
	if err != nil {
		return nil, err
	}

	rec, err := mapper.Map(*raw)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Upsert(ctx, rec); err != nil {
		s.log.Warn(ctx, "write-back to mirror failed", "id", rec.User.ID, "error", err)
	}
	return rec, nil
}

// Update applies a partial profile update remotely and mirrors the result.
// The remote is authoritative: a failing mirror write is logged, not returned.
func (s *Users) Update(ctx context.Context, id string, profile map[string]any) (*models.UserRecord, error) {
	raw, err := s.remote.UpdateUser(ctx, id, profile)
	if err != nil {
		return nil, err
	}

	rec, err := mapper.Map(*raw)
	if err != nil {
		return nil, fmt.Errorf("update applied remotely, but the response was rejected: %w", err)
	}
	if _, err := s.repo.Upsert(ctx, rec); err != nil {
		s.log.Warn(ctx, "mirror not updated", "id", id, "error", err)
	}
	return rec, nil
}

// Delete removes the user remotely first, then from the mirror. When the
// remote delete fails the mirror row is left intact. It returns the resolved
// user id.
func (s *Users) Delete(ctx context.Context, sel Selector) (string, error) {
	if err := sel.validate(); err != nil {
		return "", err
	}

	id, err := s.resolveID(ctx, sel)
	if err != nil {
		return "", err
	}

	if err := s.remote.DeleteUser(ctx, id); err != nil {
		return id, err
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, common.ErrNotFound) {
		return id, fmt.Errorf("deleted remotely, mirror cleanup failed: %w", err)
	}
	return id, nil
}

// ResetPassword triggers the remote reset-password lifecycle operation and
// returns the reset URL. The mirror is untouched: the user record itself does
// not change.
func (s *Users) ResetPassword(ctx context.Context, id string) (string, error) {
	return s.remote.ResetPassword(ctx, id)
}

// List reads one page of the mirror together with the total row count.
func (s *Users) List(ctx context.Context, offset, limit int) ([]models.UserRecord, int, error) {
	records, err := s.repo.ListPage(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// resolveID turns a selector into a user id, preferring the mirror for email
// lookups and falling back to the remote filter query on a local miss.
func (s *Users) resolveID(ctx context.Context, sel Selector) (string, error) {
	if sel.ID != "" {
		return sel.ID, nil
	}

	rec, err := s.repo.GetByEmail(ctx, sel.Email)
	if err == nil {
		return rec.User.ID, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", err
	}

	raw, err := s.remote.GetUserByEmail(ctx, sel.Email)
	if err != nil {
		return "", err
	}
	return raw.ID, nil
}
