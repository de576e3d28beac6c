package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrDeleteFailed is returned when a delete operation fails.
	ErrDeleteFailed = errors.New("delete failed")

	// Entity-specific "not found" errors.

	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)
	ErrTemplateNotFound  = fmt.Errorf("%w: prompt template", ErrNotFound)
	ErrDeckNotFound      = fmt.Errorf("%w: deck", ErrNotFound)
	ErrSpreadNotFound    = fmt.Errorf("%w: spread", ErrNotFound)
	ErrCourseNotFound    = fmt.Errorf("%w: course", ErrNotFound)
	ErrHoroscopeNotFound = fmt.Errorf("%w: horoscope", ErrNotFound)

	// Entity-specific "duplicate" errors.

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrTemplateKeyExists indicates a prompt template with the same key
	// already exists.
	ErrTemplateKeyExists = fmt.Errorf("%w: template key", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
