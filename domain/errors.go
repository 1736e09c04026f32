package domain

import "errors"

// Catalog errors. Repositories and services wrap these with %w so the
// HTTP layer can pick a status code with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrUnknownVariant     = errors.New("unknown product type")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
