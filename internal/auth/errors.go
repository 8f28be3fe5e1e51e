package auth

import "errors"

var (
	// ErrInvalidToken covers a bad signature, a malformed token or an unexpected algorithm.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken means the token was valid but its exp claim has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	ErrPasswordMismatch = errors.New("password does not match")
)
