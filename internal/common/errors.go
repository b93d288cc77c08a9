// Package common defines shared sentinel errors used across the CLI, the
// remote client, and the local store. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// ErrNotFound means a query missed: the record does not exist at the
	// requested source. It is surfaced to the caller and never retried.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a fatal auth/permission failure (401/403).
	// Operations hitting it abort immediately with no retry.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransient marks a network or I/O failure worth retrying with
	// backoff, up to a bounded number of attempts.
	ErrTransient = errors.New("transient error")

	// ErrValidation marks a malformed record rejected by the mapper. It is
	// record-scoped and never aborts a batch.
	ErrValidation = errors.New("validation error")
)
