package services

import "errors"

// Sentinel errors for the store contracts. Handlers match these with
// errors.Is to pick HTTP status codes; ownership failures and missing
// resources are distinct kinds and must stay that way.
var (
	// ErrNotFound reports a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden reports a mutation attempted by a non-owner.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateUser reports a registration that collides with an
	// existing username or email.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials is returned for every failed login, whether
	// the email is unknown or the password is wrong, so callers cannot
	// probe for registered accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
