// Package common defines shared sentinel errors and helpers used across the
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors (missing or malformed token).
	ErrInvalidToken        = errors.New("invalid token")
	ErrRefreshTokenMissing = errors.New("no refresh token available")

	// Session errors.
	ErrNoUserID = errors.New("user ID is missing")

	// Persistence errors.
	ErrSnapshotVersion = errors.New("persisted snapshot version mismatch")
)
