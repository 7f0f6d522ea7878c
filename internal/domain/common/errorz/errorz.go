package errorz

import "errors"

var (
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConnectionExists   = errors.New("connection id already registered")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCode        = errors.New("invalid code")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
