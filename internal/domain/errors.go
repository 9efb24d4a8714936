package domain

import "errors"

// Sentinel errors shared by repositories, usecases and the HTTP boundary.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrRender             = errors.New("render failed")
)
