// Package engine turns a booking into a deterministic match result.
//
// Simulate reads competitors and categories but never writes them. Draws are
// taken from a fresh rng.Source in a fixed order (weight jitter for A, weight
// jitter for B, the weighted pick, the rating swing, then the winner's and the
// loser's stamina extra), so the same inputs and seed always give the same
// result.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/ringside/internal/domain/booking"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/internal/domain/rng"
)

// Weighting and rating constants.
const (
	WeightJitter          = 5
	ProficiencyWeight     = 4
	MinWeight             = 1
	ContrastBonus         = 5
	FatigueThreshold      = 40
	FatiguePenalty        = 5
	StaminaJitter         = 2
	ProficiencyMitigation = 2
	MinStaminaLoss        = 1
)

// CompetitorLookup resolves competitor records. *roster.Store satisfies it.
type CompetitorLookup interface {
	Competitor(id string) (model.Competitor, bool)
}

// CategoryLookup resolves category profiles. *catalog.Catalog satisfies it.
type CategoryLookup interface {
	Category(id string) (model.Category, bool)
}

var resultNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ringside.match-result"))

type side struct {
	c          model.Competitor
	proficient bool
}

// Simulate computes the outcome of b under seed.
func Simulate(b booking.Booking, competitors CompetitorLookup, categories CategoryLookup, seed int64) (model.MatchResult, error) {
	src := rng.New(seed)

	ca, ok := competitors.Competitor(b.A())
	if !ok {
		return model.MatchResult{}, fmt.Errorf("%w: %q", ErrUnknownCompetitor, b.A())
	}
	cb, ok := competitors.Competitor(b.B())
	if !ok {
		return model.MatchResult{}, fmt.Errorf("%w: %q", ErrUnknownCompetitor, b.B())
	}
	cat, ok := categories.Category(b.Category())
	if !ok {
		return model.MatchResult{}, fmt.Errorf("%w: %q", ErrUnknownCategory, b.Category())
	}
	t := cat.Tuning

	a := side{c: ca, proficient: ca.IsProficient(cat.ID)}
	o := side{c: cb, proficient: cb.IsProficient(cat.ID)}

	wA, err := weight(src, a)
	if err != nil {
		return model.MatchResult{}, err
	}
	wB, err := weight(src, o)
	if err != nil {
		return model.MatchResult{}, err
	}
	winnerID, err := src.WeightedPick(a.c.ID, wA, o.c.ID, wB)
	if err != nil {
		return model.MatchResult{}, err
	}
	winner, loser := a, o
	if winnerID != a.c.ID {
		winner, loser = o, a
	}

	swing, err := src.NextInt(-t.RatingVariance, t.RatingVariance)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("rating swing: %w", err)
	}
	rating := rate(a, o, t, swing)

	winnerLoss, err := staminaLoss(src, t.StaminaCostWinner, winner.proficient)
	if err != nil {
		return model.MatchResult{}, err
	}
	loserLoss, err := staminaLoss(src, t.StaminaCostLoser, loser.proficient)
	if err != nil {
		return model.MatchResult{}, err
	}

	return model.MatchResult{
		ID:       resultID(seed, b, a, o, t),
		Seed:     seed,
		WinnerID: winner.c.ID,
		LoserID:  loser.c.ID,
		Rating:   rating,
		Deltas: map[string]model.StatDelta{
			winner.c.ID: {Popularity: t.PopularityDeltaWinner, Stamina: -winnerLoss},
			loser.c.ID:  {Popularity: t.PopularityDeltaLoser, Stamina: -loserLoss},
		},
		Category: model.CategoryAudit{ID: cat.ID, Name: cat.Name, Tuning: t},
	}, nil
}

func weight(src *rng.Source, s side) (int, error) {
	jitter, err := src.NextInt(-WeightJitter, WeightJitter)
	if err != nil {
		return 0, fmt.Errorf("weight jitter: %w", err)
	}
	w := s.c.Popularity + s.c.Stamina + jitter
	if s.proficient {
		w += ProficiencyWeight
	}
	return max(MinWeight, w), nil
}

// rate averages popularity and adds the bonuses and swing. The sum is
// doubled before halving so the average truncates exactly once.
func rate(a, b side, t model.Tuning, swing int) int {
	adj := t.RatingBonus + swing
	if a.c.Alignment != b.c.Alignment {
		adj += ContrastBonus
	}
	for _, s := range []side{a, b} {
		if s.proficient {
			adj++
		}
		if s.c.Stamina < FatigueThreshold {
			adj -= FatiguePenalty
		}
	}
	return model.Clamp((a.c.Popularity + b.c.Popularity + 2*adj) / 2)
}

func staminaLoss(src *rng.Source, cost int, proficient bool) (int, error) {
	extra, err := src.NextInt(0, StaminaJitter)
	if err != nil {
		return 0, fmt.Errorf("stamina jitter: %w", err)
	}
	loss := cost + extra
	if proficient {
		loss -= ProficiencyMitigation
	}
	return max(MinStaminaLoss, loss), nil
}

func resultID(seed int64, b booking.Booking, a, o side, t model.Tuning) string {
	key := fmt.Sprintf("%d|%s|%s|%s|%d/%d/%t|%d/%d/%t|%+v",
		seed, b.A(), b.B(), b.Category(),
		a.c.Popularity, a.c.Stamina, a.proficient,
		o.c.Popularity, o.c.Stamina, o.proficient,
		t,
	)
	return uuid.NewSHA1(resultNamespace, []byte(key)).String()
}
