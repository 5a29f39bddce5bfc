package domain

import "errors"

// Error kinds shared by every layer. Usecases wrap these with context via
// fmt.Errorf("...: %w", ...); delivery translates each kind to an HTTP
// status without inspecting messages.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)
