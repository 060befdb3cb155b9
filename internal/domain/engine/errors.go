package engine

import (
	"errors"
	"fmt"
)

// ErrLookup marks a booking that references an ID missing from the roster or
// catalog. It means validation was skipped or the data changed underneath it.
var ErrLookup = errors.New("lookup failure")

// Specific lookup failures; both match ErrLookup with errors.Is.
var (
	ErrUnknownCompetitor = fmt.Errorf("%w: unknown competitor", ErrLookup)
	ErrUnknownCategory   = fmt.Errorf("%w: unknown category", ErrLookup)
)
