package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/dbx"
	"github.com/dmitrijs2005/oktasync/internal/models"
)

// SQLiteRepository implements Repository on top of a shared *sql.DB. Writes
// run in their own transactions via dbx.WithTx.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const recordColumns = `
	u.id, u.status, u.created_at, u.updated_at,
	p.first_name, p.last_name, p.email, p.phone,
	t.id, t.name`

const recordFrom = `
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id
	LEFT JOIN user_types t ON t.id = u.type_id`

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+recordColumns+recordFrom+` WHERE u.id = ?`, id)
	return scanRecord(row)
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+recordColumns+recordFrom+` WHERE p.email = ?`, email)
	return scanRecord(row)
}

// Upsert writes all three rows of rec in one transaction. The stored
// updated_at is the tie-break: an incoming record that is not newer is a
// no-op and reports false.
func (r *SQLiteRepository) Upsert(ctx context.Context, rec *models.UserRecord) (bool, error) {
	applied := false

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var stored string
		err := tx.QueryRowContext(ctx, `SELECT updated_at FROM users WHERE id = ?`, rec.User.ID).Scan(&stored)
		switch {
		case err == nil:
			storedAt, perr := parseStoredTime(stored)
			if perr != nil {
				return perr
			}
			if !rec.User.UpdatedAt.After(storedAt) {
				return nil // stale or identical, keep the stored record
			}
		case errors.Is(err, sql.ErrNoRows):
			// new record
		default:
			return err
		}

		if rec.Type != nil {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO user_types (id, name) VALUES (?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
				rec.Type.ID, rec.Type.Name)
			if err != nil {
				return fmt.Errorf("upserting user type: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, status, type_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				status = excluded.status,
				type_id = excluded.type_id,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at`,
			rec.User.ID, string(rec.User.Status), nullable(rec.User.TypeID),
			formatTime(rec.User.CreatedAt), formatTime(rec.User.UpdatedAt))
		if err != nil {
			return fmt.Errorf("upserting user: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_profiles (user_id, first_name, last_name, email, phone)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				first_name = excluded.first_name,
				last_name = excluded.last_name,
				email = excluded.email,
				phone = excluded.phone`,
			rec.Profile.UserID, rec.Profile.FirstName, rec.Profile.LastName,
			rec.Profile.Email, rec.Profile.Phone)
		if err != nil {
			return fmt.Errorf("upserting profile: %w", err)
		}

		applied = true
		return nil
	})

	return applied, err
}

// Delete removes the user and its profile row in one transaction.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = ?`, id); err != nil {
			return fmt.Errorf("deleting profile: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
		}
		return nil
	})
}

func (r *SQLiteRepository) ListPage(ctx context.Context, offset, limit int) ([]models.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT`+recordColumns+recordFrom+` ORDER BY u.id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var result []models.UserRecord
	for rows.Next() {
		rec, err := scanRecordRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row *sql.Row) (*models.UserRecord, error) {
	rec, err := scanRecordRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rec, err
}

func scanRecordRow(s scanner) (*models.UserRecord, error) {
	var (
		rec                  models.UserRecord
		status               string
		createdAt, updatedAt string
		firstName, lastName  sql.NullString
		email, phone         sql.NullString
		typeID, typeName     sql.NullString
	)

	err := s.Scan(&rec.User.ID, &status, &createdAt, &updatedAt,
		&firstName, &lastName, &email, &phone,
		&typeID, &typeName)
	if err != nil {
		return nil, err
	}

	rec.User.Status = models.Status(status)
	if rec.User.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return nil, err
	}
	if rec.User.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
		return nil, err
	}

	rec.Profile = models.Profile{
		UserID:    rec.User.ID,
		FirstName: firstName.String,
		LastName:  lastName.String,
		Email:     email.String,
		Phone:     phone.String,
	}

	if typeID.Valid {
		rec.User.TypeID = typeID.String
		rec.Type = &models.UserType{ID: typeID.String, Name: typeName.String}
	}

	return &rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
