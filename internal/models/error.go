package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound   = errors.New("resource not found")
	ErrBadRequest = errors.New("bad request")

	// Content and upstream errors
	ErrInvalidSection      = errors.New("unknown portfolio section")
	ErrUpstreamUnavailable = errors.New("upstream feed unavailable")
	ErrMailDisabled        = errors.New("contact mail is not configured")
)
