package auth

import "errors"

// Classified failure kinds returned by the auth service. The transport
// layer maps each to a status code with errors.Is; anything not listed
// here is a store failure and propagates wrapped.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid reset token")
	ErrExpiredToken       = errors.New("reset token expired")
)
