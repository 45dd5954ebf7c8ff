package service

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound means a referenced user, recipe or favorite does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a username or email is already taken.
	ErrConflict = errors.New("username or email already registered")
	// ErrForbidden means the acting user does not own the target record.
	ErrForbidden = errors.New("operation not permitted")
	// ErrAlreadyFavorited means the (user, recipe) pair is already in the ledger.
	ErrAlreadyFavorited = errors.New("recipe already favorited")
	// ErrInvalidToken covers bad credentials and bad/expired/revoked tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrValidation means the input itself is malformed.
	ErrValidation = errors.New("validation failed")
)

// isDuplicateEntryError checks the driver error strings for a unique
// constraint violation. gorm does not normalize these across dialects.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}
