// Package catalog holds the immutable set of match categories and their tuning.
package catalog

import (
	"fmt"
	"strings"

	"github.com/okian/ringside/internal/domain/model"
)

// Source values reported by Catalog.Source.
const (
	SourceFile     = "file"
	SourceDefaults = "defaults"
	SourceInline   = "inline"
)

// Catalog maps category IDs to profiles. It is read-only after construction.
type Catalog struct {
	order  []string
	byID   map[string]model.Category
	source string
}

// New validates categories and builds a catalog that preserves their order.
func New(categories ...model.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		order:  make([]string, 0, len(categories)),
		byID:   make(map[string]model.Category, len(categories)),
		source: SourceInline,
	}
	for _, cat := range categories {
		if err := validate(cat); err != nil {
			return nil, err
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, cat.ID)
		}
		c.order = append(c.order, cat.ID)
		c.byID[cat.ID] = cat
	}
	return c, nil
}

func validate(cat model.Category) error {
	t := cat.Tuning
	switch {
	case strings.TrimSpace(cat.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidCategory)
	case strings.TrimSpace(cat.Name) == "":
		return fmt.Errorf("%w: %q has no name", ErrInvalidCategory, cat.ID)
	case t.RatingVariance < 0:
		return fmt.Errorf("%w: %q rating_variance %d < 0", ErrInvalidCategory, cat.ID, t.RatingVariance)
	case t.StaminaCostWinner <= 0 || t.StaminaCostLoser <= 0:
		return fmt.Errorf("%w: %q stamina costs must be positive", ErrInvalidCategory, cat.ID)
	}
	return nil
}

// Category returns the profile for id. A nil catalog knows no categories.
func (c *Catalog) Category(id string) (model.Category, bool) {
	if c == nil {
		return model.Category{}, false
	}
	cat, ok := c.byID[id]
	return cat, ok
}

// Has reports whether id names a known category.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}

// IDs returns category IDs in load order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// List returns the profiles in load order.
func (c *Catalog) List() []model.Category {
	out := make([]model.Category, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.order) }

// Source reports where the catalog came from: file, defaults or inline.
func (c *Catalog) Source() string { return c.source }
