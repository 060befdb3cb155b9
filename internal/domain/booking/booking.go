// Package booking gates proposed matches before they reach the engine.
package booking

import (
	"fmt"
	"strings"
)

// CategorySet reports whether a category ID is known. *catalog.Catalog
// satisfies it.
type CategorySet interface {
	Has(id string) bool
}

// Booking is a validated pairing of two competitors under one category.
// The zero value is not a valid booking; use New.
type Booking struct {
	a        string
	b        string
	category string
}

// New validates the pairing and returns an immutable Booking.
func New(a, b, categoryID string, known CategorySet) (Booking, error) {
	if err := Validate(a, b, categoryID, known); err != nil {
		return Booking{}, err
	}
	return Booking{a: a, b: b, category: categoryID}, nil
}

// Validate returns the first reason the pairing cannot be booked, or nil.
// A nil known skips the membership check. A typed nil such as a nil
// *catalog.Catalog is a set, and an empty one.
func Validate(a, b, categoryID string, known CategorySet) error {
	switch {
	case blank(a) || blank(b):
		return ErrMissingCompetitor
	case a == b:
		return fmt.Errorf("%w: %q", ErrSameCompetitor, a)
	case blank(categoryID):
		return ErrMissingCategory
	case known != nil && !known.Has(categoryID):
		return fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}
	return nil
}

// IsValid reports whether Validate accepts the pairing.
func IsValid(a, b, categoryID string, known CategorySet) bool {
	return Validate(a, b, categoryID, known) == nil
}

// A returns the first competitor ID.
func (b Booking) A() string { return b.a }

// B returns the second competitor ID.
func (b Booking) B() string { return b.b }

// Category returns the category ID.
func (b Booking) Category() string { return b.category }

// String renders the booking as "a vs b (category)".
func (b Booking) String() string {
	return fmt.Sprintf("%s vs %s (%s)", b.a, b.b, b.category)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
