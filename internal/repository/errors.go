package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidID is returned when an ID is not a well-formed UUID.
	ErrInvalidID = errors.New("malformed id")
)
