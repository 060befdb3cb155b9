// Package roster owns the competitor records and the only code path that
// changes their stats.
//
// A Store is not safe for concurrent use. It has a single owner (the booking
// session) which serializes validate, simulate and apply under one lock.
package roster

import (
	"fmt"
	"strings"

	"github.com/okian/ringside/internal/domain/model"
)

// Source values reported by Store.Source.
const (
	SourceFile     = "file"
	SourceDefaults = "defaults"
	SourceInline   = "inline"
)

// minCompetitors is the smallest roster that can book a match.
const minCompetitors = 2

// Store maps competitor IDs to mutable records, preserving load order.
type Store struct {
	order  []string
	byID   map[string]*model.Competitor
	source string
}

// New builds a store, clamping every competitor's stats. IDs must be
// non-empty and unique, and at least two competitors are required.
func New(competitors ...model.Competitor) (*Store, error) {
	if len(competitors) < minCompetitors {
		return nil, fmt.Errorf("%w: got %d", ErrRosterTooSmall, len(competitors))
	}
	s := &Store{
		order:  make([]string, 0, len(competitors)),
		byID:   make(map[string]*model.Competitor, len(competitors)),
		source: SourceInline,
	}
	for _, c := range competitors {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidCompetitor)
		}
		if _, dup := s.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCompetitor, c.ID)
		}
		rec := c.Clone()
		rec.Popularity = model.Clamp(rec.Popularity)
		rec.Stamina = model.Clamp(rec.Stamina)
		s.order = append(s.order, c.ID)
		s.byID[c.ID] = &rec
	}
	return s, nil
}

// Competitor returns a copy of the record for id.
func (s *Store) Competitor(id string) (model.Competitor, bool) {
	c, ok := s.byID[id]
	if !ok {
		return model.Competitor{}, false
	}
	return c.Clone(), true
}

// IDs returns competitor IDs in load order.
func (s *Store) IDs() []string {
	return append([]string(nil), s.order...)
}

// List returns copies of every competitor in load order.
func (s *Store) List() []model.Competitor {
	out := make([]model.Competitor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out
}

// Len returns the number of competitors.
func (s *Store) Len() int { return len(s.order) }

// Source reports where the roster came from: file, defaults or inline.
func (s *Store) Source() string { return s.source }
