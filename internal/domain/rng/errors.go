package rng

import "errors"

// Sentinel kinds for random source errors.
var (
	ErrInvalidRange = errors.New("invalid range")
)
