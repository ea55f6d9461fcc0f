package service

import "errors"

// Domain errors surfaced to the transport layer. Handlers map each kind
// to an HTTP status; none are swallowed inside the services.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidReactionType = errors.New("invalid reaction type")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrUnknownEmail        = errors.New("no account with that email")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token expired")
)
