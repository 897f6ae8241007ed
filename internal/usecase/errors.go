package usecase

import (
	"errors"
)

// Sentinel errors for the service layer. Handlers map these onto HTTP
// statuses; anything else is an internal error.
var (
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrNotFound     = errors.New("not found")
)
