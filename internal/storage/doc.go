// Package storage provides the local persistence layer for the mirrored user
// directory.
//
// # Overview
//
// The package defines a Repository interface over the entity set (users,
// profiles, user types) and a SQLite-backed implementation. Open initializes
// a database handle and applies the embedded goose migrations.
//
// # Data model
//
// Three relations: users (id, status, type_id, created_at, updated_at),
// user_profiles (1:1 with users, removed together with the user row) and
// user_types (shared references). Emails are unique case-insensitively.
//
// # Write semantics
//
// Upsert writes the user, profile and type rows of one record inside a single
// transaction, so concurrent readers never observe a half-written record.
// It is idempotent and last-write-wins: a record whose updated_at is not
// newer than the stored one leaves the store untouched and reports applied
// false. Delete removes the user and its profile in one transaction.
//
// # Concurrency
//
// A single *sql.DB handle is shared by all workers; every write is a
// self-contained begin/commit so no cross-record locking is needed.
package storage
