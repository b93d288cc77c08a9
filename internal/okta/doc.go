// Package okta implements the HTTP client for the Okta Users API.
//
// # Overview
//
// Client wraps a single *http.Client configured with the organization base
// URL, the SSWS API token and a fixed request timeout. The users collection
// is exposed as a cursor-driven page sequence (ListUsersPage) plus
// single-record operations (GetUserByID, GetUserByEmail, UpdateUser,
// DeleteUser, ResetPassword).
//
// # Pagination
//
// Okta paginates with RFC 5988 Link headers. The cursor handed back in
// Page.NextCursor is the rel="next" URL verbatim; callers treat it as an
// opaque token and feed it into the next ListUsersPage call. An empty cursor
// means the sequence is exhausted.
//
// # Error classification
//
// Failures map onto the shared taxonomy in internal/common:
//
//   - network errors, timeouts, 5xx  -> common.ErrTransient (retryable)
//   - 401/403                        -> common.ErrUnauthorized (fatal)
//   - 404 / empty filter result      -> common.ErrNotFound
//   - 429                            -> *RateLimitError carrying Retry-After
//
// Callers decide retry policy; the client itself never retries.
package okta
