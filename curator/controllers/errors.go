package controllers

import "errors"

var (
	// ErrValidation marks malformed, user-correctable input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized covers bad credentials and unresolvable tokens.
	ErrUnauthorized = errors.New("invalid username or password")
)
