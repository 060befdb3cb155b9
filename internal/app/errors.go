package service

import "errors"

// Session errors.
var (
	ErrNotStarted        = errors.New("booking session not started")
	ErrAlreadyApplied    = errors.New("result already applied")
	ErrUnknownResult     = errors.New("result was not previewed in this session")
	ErrNoPreviousBooking = errors.New("no previous booking to rematch")
)
