package database

import "github.com/pkg/errors"

// ErrNotFound denotes that the requested key does not exist in the database.
// It is wrapped, so check for it with IsNotFoundError rather than with direct
// equality.
var ErrNotFound = errors.New("not found")

// ErrDatabaseUnavailable denotes that the database could not be opened or
// reached, as opposed to a key that is merely absent.
var ErrDatabaseUnavailable = errors.New("database unavailable")

// IsNotFoundError checks whether an error is an ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDatabaseUnavailableError checks whether an error is an
// ErrDatabaseUnavailable.
func IsDatabaseUnavailableError(err error) bool {
	return errors.Is(err, ErrDatabaseUnavailable)
}
