package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrRosterTooSmall      = errors.New("roster needs at least two competitors")
	ErrInvalidCompetitor   = errors.New("invalid competitor")
	ErrDuplicateCompetitor = errors.New("duplicate competitor id")
	ErrUnknownCompetitor   = errors.New("competitor not found")
	ErrMissingField        = errors.New("missing required field")
)
