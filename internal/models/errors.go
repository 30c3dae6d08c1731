package models

import "errors"

// Sentinel errors shared by the store and the reconciliation engine.
var (
	// ErrNotFound indicates that a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates that a create collided with an existing record
	// holding the same unique key.
	ErrConflict = errors.New("already exists")
)
