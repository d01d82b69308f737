package repository

import "errors"

var (
	// ErrNotFound is returned when no snapshot has been stored for an owner
	ErrNotFound = errors.New("not found")

	// ErrInvalidSnapshot is returned when a stored snapshot cannot be decoded
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
