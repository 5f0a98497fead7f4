package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is wrapped by every lookup, update or delete that matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is wrapped when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// isUniqueViolation reports whether err came from a SQLite UNIQUE or
// PRIMARY KEY constraint.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
