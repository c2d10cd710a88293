package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownSystem = errors.New("unknown rating system")
	ErrInvalidRating = errors.New("invalid rating")
	ErrNoDefault     = errors.New("rating system has no default")
	ErrWrongSystem   = errors.New("rating belongs to another system")
)
