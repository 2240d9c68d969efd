// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrValidation is returned when required input is missing or malformed.
	// Callers wrap it with a description of the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already in use")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountBanned is returned when a banned user tries to open or extend a session.
	ErrAccountBanned = errors.New("account suspended")

	// ErrMissingRefreshToken is returned when a refresh is attempted without a refresh cookie.
	ErrMissingRefreshToken = errors.New("no refresh token provided")

	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or malformed.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrInvalidSession is returned when a well-formed refresh token is no longer the user's active one.
	ErrInvalidSession = errors.New("invalid session")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("you cannot follow yourself")

	// ErrAlreadyFollowing is returned when the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following")

	// ErrNotFollowing is returned when removing a follow edge that does not exist.
	ErrNotFollowing = errors.New("not following")
)
