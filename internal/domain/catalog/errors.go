package catalog

import "errors"

// Sentinel kinds for catalog errors. Load never returns them; they surface
// from New and are logged when Load falls back to defaults.
var (
	ErrEmptyCatalog      = errors.New("catalog has no categories")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrDuplicateCategory = errors.New("duplicate category id")
	ErrMissingField      = errors.New("missing required field")
)
