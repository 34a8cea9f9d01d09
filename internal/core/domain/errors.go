package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownStatus indicates a subscription status outside the known set.
	// Seeing it means the stored data is corrupt.
	ErrUnknownStatus = errors.New("unknown subscription status")

	// ErrInvalidTransition indicates a status change the lifecycle forbids,
	// such as cancelling an already cancelled subscription.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnsupportedDriver indicates an unknown storage driver in settings.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)
