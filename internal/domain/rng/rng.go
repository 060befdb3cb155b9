// Package rng provides the seeded random source used by the simulation engine.
//
// A Source built from the same seed yields the same sequence of draws in every
// process and on every platform: it is backed by math/rand's seeded source,
// whose output is fixed by the Go 1 compatibility promise.
package rng

import (
	"fmt"
	"math/rand"
)

// Source draws bounded integers and weighted two-way picks from a fixed seed.
// It is not safe for concurrent use; each simulation builds its own.
type Source struct {
	seed  int64
	r     *rand.Rand
	draws int
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)), //nolint:gosec // reproducibility is the point
	}
}

// Seed returns the seed the source was built from.
func (s *Source) Seed() int64 { return s.seed }

// Draws returns how many values have been drawn so far.
func (s *Source) Draws() int { return s.draws }

// NextInt returns an integer drawn uniformly from [low, high] inclusive.
func (s *Source) NextInt(low, high int) (int, error) {
	if low > high {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, low, high)
	}
	s.draws++
	return low + s.r.Intn(high-low+1), nil
}

// WeightedPick returns idA or idB with odds proportional to their weights.
// Callers floor weights at 1; a non-positive weightB makes idA certain.
func (s *Source) WeightedPick(idA string, weightA int, idB string, weightB int) (string, error) {
	total := max(1, weightA+weightB)
	roll, err := s.NextInt(1, total)
	if err != nil {
		return "", err
	}
	if roll <= weightA {
		return idA, nil
	}
	return idB, nil
}
