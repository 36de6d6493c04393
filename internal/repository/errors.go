package repository

import "errors"

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrDuplicateUsername      = errors.New("username already registered")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrDuplicateFacultyID     = errors.New("faculty id already registered")
	ErrInvalidStateTransition = errors.New("registration status is already final")
)

// IsDuplicate reports whether err is any of the uniqueness violations
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicateFacultyID)
}
