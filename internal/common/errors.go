// Package common defines shared constants and sentinel errors used across
// the layers of pomotrack. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound is also the outcome of any
	// owner- or state-guarded update that matched zero rows: a record that
	// is missing, foreign-owned, soft-deleted or in the wrong state is
	// indistinguishable from one that never existed.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorConflict     = errors.New("already exists")
	ErrorValidation   = errors.New("validation error")

	// ErrorNoChange signals that an update matched its target but had
	// nothing left to do (e.g. completing an already-completed task).
	ErrorNoChange = errors.New("no changes made")

	// Auth errors (invalid or malformed token).
	ErrorInvalidToken = errors.New("invalid token")
)
