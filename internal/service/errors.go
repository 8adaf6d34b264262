package service

import "errors"

// Sentinel errors the handlers map onto HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong     = errors.New("comment cannot exceed 500 characters")
	ErrSelfFollow         = errors.New("you cannot follow yourself")

	// ErrUnavailable marks a transient backend condition (query
	// deadline exceeded); callers should retry later. Surfaced as 503,
	// never as a generic 500.
	ErrUnavailable = errors.New("temporarily unavailable")
)
