package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means the write violated a uniqueness constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrRoleNotFound means a role required by the write has not been seeded.
	ErrRoleNotFound = errors.New("repository: role not found")
)

// isDuplicateEntryError recognises unique violations. TranslateError covers
// drivers that support it; the message checks cover the rest.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
