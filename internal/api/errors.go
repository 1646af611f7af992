package api

import "errors"

var (
	// ErrNoToken indicates no bearer token is available; no network call
	// is attempted in this case.
	ErrNoToken = errors.New("no auth token available")

	// ErrUnauthorized indicates the backend rejected the bearer token.
	ErrUnauthorized = errors.New("backend rejected credentials")

	// ErrConflict indicates a version mismatch on an optimistic-concurrency
	// guarded update; the caller must discard local edits and re-fetch.
	ErrConflict = errors.New("version conflict, refresh required")

	// ErrUnavailable indicates the backend is unreachable.
	ErrUnavailable = errors.New("backend unavailable")
)
