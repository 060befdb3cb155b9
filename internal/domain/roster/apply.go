package roster

import (
	"fmt"

	"github.com/okian/ringside/internal/domain/model"
)

// Apply adds every delta in result to the store and reclamps the touched
// stats to [0,100]. It checks all IDs before writing, so an unknown
// competitor leaves the store untouched.
//
// Apply does not remember what it has applied: calling it twice with the
// same result counts the deltas twice.
func (s *Store) Apply(result model.MatchResult) error {
	for id := range result.Deltas {
		if _, ok := s.byID[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCompetitor, id)
		}
	}
	for id, d := range result.Deltas {
		c := s.byID[id]
		c.Popularity = model.Clamp(c.Popularity + d.Popularity)
		c.Stamina = model.Clamp(c.Stamina + d.Stamina)
	}
	return nil
}
