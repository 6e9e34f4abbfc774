package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services match on
// these instead of driver-specific errors.
var (
	ErrNotFound = errors.New("record not found")
)
