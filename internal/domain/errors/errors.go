package errors

import "errors"

var (
	ErrMalformedOrder        = errors.New("malformed order")
	ErrMissingTotal          = errors.New("order total is missing")
	ErrMissingDeliveryTarget = errors.New("order delivery target is missing")
	ErrMalformedUpdate       = errors.New("malformed order update")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrUnexpectedStore       = errors.New("unexpected store failure")
	ErrAlreadyExists         = errors.New("already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthorized          = errors.New("unauthorized")
)
