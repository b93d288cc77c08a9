package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/models"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(context.Background(), db))
	return NewSQLiteRepository(db)
}

func record(id, email string, updatedAt time.Time) *models.UserRecord {
	return &models.UserRecord{
		User: models.User{
			ID:        id,
			Status:    models.StatusActive,
			TypeID:    "oty1",
			CreatedAt: updatedAt.Add(-24 * time.Hour),
			UpdatedAt: updatedAt,
		},
		Profile: models.Profile{
			UserID:    id,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     email,
			Phone:     "+15551234567",
		},
		Type: &models.UserType{ID: "oty1", Name: "Standard"},
	}
}

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestUpsert_InsertAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	applied, err := repo.Upsert(ctx, record("u1", "ada@example.com", t0))
	require.NoError(t, err)
	require.True(t, applied)

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, models.StatusActive, got.User.Status)
	require.Equal(t, t0, got.User.UpdatedAt)
	require.Equal(t, "ada@example.com", got.Profile.Email)
	require.NotNil(t, got.Type)
	require.Equal(t, "Standard", got.Type.Name)
}

func TestUpsert_SameRecordTwiceIsNoOp(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	rec := record("u1", "ada@example.com", t0)

	applied, err := repo.Upsert(ctx, rec)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = repo.Upsert(ctx, rec)
	require.NoError(t, err)
	require.False(t, applied, "unchanged timestamp must be a no-op")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestUpsert_StaleRecordDoesNotRegress(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, record("u1", "new@example.com", t0))
	require.NoError(t, err)

	stale := record("u1", "old@example.com", t0.Add(-time.Hour))
	stale.User.Status = models.StatusSuspended

	applied, err := repo.Upsert(ctx, stale)
	require.NoError(t, err)
	require.False(t, applied)

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", got.Profile.Email)
	require.Equal(t, models.StatusActive, got.User.Status)
}

func TestUpsert_NewerRecordWins(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, record("u1", "ada@example.com", t0))
	require.NoError(t, err)

	newer := record("u1", "ada.l@example.com", t0.Add(time.Hour))
	newer.User.Status = models.StatusSuspended

	applied, err := repo.Upsert(ctx, newer)
	require.NoError(t, err)
	require.True(t, applied)

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, models.StatusSuspended, got.User.Status)
	require.Equal(t, "ada.l@example.com", got.Profile.Email)
}

func TestUpsert_FailureLeavesNoPartialRecord(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, record("u1", "ada@example.com", t0))
	require.NoError(t, err)

	// second user claiming the same unique email: the profile insert fails,
	// so the user row written earlier in the transaction must vanish too
	_, err = repo.Upsert(ctx, record("u2", "ada@example.com", t0))
	require.Error(t, err)

	_, err = repo.GetByID(ctx, "u2")
	require.ErrorIs(t, err, common.ErrNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestUpsert_WithoutType(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	rec := record("u1", "ada@example.com", t0)
	rec.Type = nil
	rec.User.TypeID = ""

	_, err := repo.Upsert(ctx, rec)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, got.Type)
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, record("u1", "Ada@Example.com", t0))
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "ada@example.COM")
	require.NoError(t, err)
	require.Equal(t, "u1", got.User.ID)
}

func TestGetByID_Missing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_RemovesUserAndProfile(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, record("u1", "ada@example.com", t0))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "u1"))

	_, err = repo.GetByID(ctx, "u1")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "ada@example.com")
	require.ErrorIs(t, err, common.ErrNotFound, "profile row must be removed with the user")
}

func TestDelete_MissingUser(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Delete(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestListPage(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := repo.Upsert(ctx, record(fmt.Sprintf("u%d", i), fmt.Sprintf("u%d@example.com", i), t0))
		require.NoError(t, err)
	}

	page, err := repo.ListPage(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "u1", page[0].User.ID)
	require.Equal(t, "u2", page[1].User.ID)

	page, err = repo.ListPage(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "u5", page[0].User.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// reopening against the same database must be a no-op
	require.NoError(t, RunMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	require.Zero(t, n)
}
