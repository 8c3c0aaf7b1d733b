package logincode

import "errors"

var (
	// ErrInvalidCode is returned for any code that cannot be consumed: wrong
	// digits, wrong email, expired or already used. Callers must not learn which.
	ErrInvalidCode = errors.New("invalid or expired code")

	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by CreateUser when the email already has a user
	ErrEmailTaken = errors.New("email already registered")

	// ErrDispatchFailed is returned when the code was stored but could not be delivered
	ErrDispatchFailed = errors.New("failed to send login code")

	// ErrInvalidEmail is returned when the normalized email is empty
	ErrInvalidEmail = errors.New("email is required")
)
