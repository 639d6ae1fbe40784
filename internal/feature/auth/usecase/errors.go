// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyRegistered is returned when a signup is attempted for an
	// email that already belongs to a verified user.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login when the user is absent,
	// unverified, or the password does not match. The three cases are
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidCode is returned when a verification code does not match the
	// pending registration for the given email.
	ErrInvalidCode = errors.New("invalid code")

	// ErrCodeExpired is returned when a verification code matched but its
	// expiry has passed. The stale pending registration is removed.
	ErrCodeExpired = errors.New("code expired")

	// ErrInvalidOrExpiredCode is returned when a password-reset code cannot
	// be consumed, either because it never existed or because it expired.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

	// ErrPasswordMismatch is returned when the two new-password entries of a
	// change-password request differ.
	ErrPasswordMismatch = errors.New("new passwords do not match")
)
