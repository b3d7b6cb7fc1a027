// Package common defines shared constants and sentinel errors used across
// the moodkeeper engine, its gateway backends and the CLI. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrReadOnlyTable   = errors.New("table is read-only")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Engine error taxonomy. Gateway failures are wrapped with one of these
	// markers so callers can tell reads from writes.
	ErrFetchFailed          = errors.New("fetch failed")
	ErrWriteFailed          = errors.New("write failed")
	ErrValidationFailed     = errors.New("validation failed")
	ErrAuthorizationMissing = errors.New("authorization missing")

	// ErrBusy is returned when a mutation is submitted while another one
	// from the same page is still in flight.
	ErrBusy = errors.New("operation already in progress")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Lockbox errors.
	ErrLockboxLocked     = errors.New("lockbox is locked")
	ErrLockboxNotSet     = errors.New("lockbox passphrase is not set")
	ErrIncorrectPassword = errors.New("incorrect password")
)
