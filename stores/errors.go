package stores

import "errors"

var (
	// ErrNotFound means a lookup by id matched no record
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means a required field was missing or malformed
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState means the operation targeted a record in a
	// terminal state
	ErrInvalidState = errors.New("invalid state")
)
