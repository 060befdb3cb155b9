package booking

import "errors"

// Reasons a booking is rejected.
var (
	ErrMissingCompetitor = errors.New("both competitors must be chosen")
	ErrSameCompetitor    = errors.New("a competitor cannot face themselves")
	ErrMissingCategory   = errors.New("a category must be chosen")
	ErrUnknownCategory   = errors.New("category is not in the catalog")
)
