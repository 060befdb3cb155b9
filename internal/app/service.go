// Package service provides the booking session: the single owner of the
// mutable roster that the HTTP API and the CLI drive.
//
// Every operation that reads or writes the roster runs under one mutex, so
// validate, simulate and apply never interleave and a result is applied at
// most once.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/ringside/internal/domain/booking"
	"github.com/okian/ringside/internal/domain/catalog"
	"github.com/okian/ringside/internal/domain/dedupe"
	"github.com/okian/ringside/internal/domain/engine"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/internal/domain/roster"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// Defaults used when options are not given.
const (
	DefaultInitialSeed int64 = 1
	DefaultLedgerSize        = dedupe.DefaultMaxSize
)

// Service is a booking session over one roster and one catalog.
type Service struct {
	mu sync.Mutex

	roster  *roster.Store
	catalog *catalog.Catalog
	ledger  dedupe.Ledger

	// previewed results waiting for Commit, oldest first
	pending      map[string]model.MatchResult
	pendingOrder []string

	// Configuration
	rosterPath  string
	catalogPath string
	initialSeed int64
	ledgerSize  int

	// State
	started    bool
	seed       int64
	last       *booking.Booking
	lastResult *model.MatchResult
	applied    int
	duplicates int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRosterPath sets the roster file loaded by Start.
func WithRosterPath(path string) Option {
	return func(s *Service) { s.rosterPath = path }
}

// WithCatalogPath sets the category file loaded by Start.
func WithCatalogPath(path string) Option {
	return func(s *Service) { s.catalogPath = path }
}

// WithInitialSeed sets the seed used by the first simulation.
func WithInitialSeed(seed int64) Option {
	return func(s *Service) { s.initialSeed = seed }
}

// WithLedgerSize bounds how many applied result IDs are remembered.
func WithLedgerSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.ledgerSize = size
		}
	}
}

// WithRoster uses r instead of loading RosterPath.
func WithRoster(r *roster.Store) Option {
	return func(s *Service) { s.roster = r }
}

// WithCatalog uses c instead of loading CatalogPath.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// New constructs a session. Call Start before booking.
func New(opts ...Option) *Service {
	s := &Service{
		initialSeed: DefaultInitialSeed,
		ledgerSize:  DefaultLedgerSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the roster and catalog (falling back to built-in sets) and
// resets the seed. Calling Start on a started session is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting booking session...")

	if s.roster == nil {
		s.roster = roster.Load(ctx, s.rosterPath, roster.WithLogger(s.logger.Named("roster")))
	}
	if s.catalog == nil {
		s.catalog = catalog.Load(ctx, s.catalogPath, catalog.WithLogger(s.logger.Named("catalog")))
	}
	s.ledger = dedupe.NewLedger(dedupe.WithMaxSize(s.ledgerSize))
	s.pending = make(map[string]model.MatchResult)
	s.pendingOrder = nil
	s.seed = s.initialSeed
	s.started = true

	metrics.UpdateRosterSize(s.roster.Len())
	metrics.UpdateCatalogSize(s.catalog.Len())
	metrics.UpdateCurrentSeed(s.seed)

	s.logger.Info(ctx, "booking session started",
		logger.Int("competitors", s.roster.Len()),
		logger.String("rosterSource", s.roster.Source()),
		logger.Int("categories", s.catalog.Len()),
		logger.String("catalogSource", s.catalog.Source()),
		logger.Int64("seed", s.seed),
	)
	return nil
}

// Stop ends the session. Pending previews are discarded.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.pending = nil
	s.pendingOrder = nil
	s.started = false
	s.logger.Info(context.Background(), "booking session stopped",
		logger.Int("applied", s.applied),
		logger.Int("duplicates", s.duplicates),
	)
}

// Validate checks a proposed booking against the catalog and the roster.
func (s *Service) Validate(ctx context.Context, a, b, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	_, err := s.newBooking(ctx, a, b, categoryID)
	return err
}

// Preview simulates a booking without applying it. The result can be
// applied later, once, with Commit. The seed advances by one.
func (s *Service) Preview(ctx context.Context, a, b, categoryID string) (model.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.MatchResult{}, ErrNotStarted
	}
	bk, err := s.newBooking(ctx, a, b, categoryID)
	if err != nil {
		return model.MatchResult{}, err
	}
	res, err := s.simulate(ctx, bk)
	if err != nil {
		return model.MatchResult{}, err
	}
	s.addPending(res)
	return res, nil
}

// Commit applies a previewed result to the roster. A result is applied at
// most once: a second commit of the same ID returns ErrAlreadyApplied.
func (s *Service) Commit(ctx context.Context, resultID string) (model.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.MatchResult{}, ErrNotStarted
	}
	if s.ledger.Contains(resultID) {
		s.duplicates++
		metrics.RecordResultDuplicate()
		s.logger.Warn(ctx, "result already applied", logger.String("resultID", resultID))
		return model.MatchResult{}, fmt.Errorf("%w: %s", ErrAlreadyApplied, resultID)
	}
	res, ok := s.pending[resultID]
	if !ok {
		return model.MatchResult{}, fmt.Errorf("%w: %s", ErrUnknownResult, resultID)
	}
	if err := s.apply(ctx, res); err != nil {
		return model.MatchResult{}, err
	}
	s.dropPending(resultID)
	return res, nil
}

// Book validates, simulates and applies a booking in one step.
func (s *Service) Book(ctx context.Context, a, b, categoryID string) (model.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.MatchResult{}, ErrNotStarted
	}
	bk, err := s.newBooking(ctx, a, b, categoryID)
	if err != nil {
		return model.MatchResult{}, err
	}
	return s.book(ctx, bk)
}

// Rematch books the most recent booking again with the next seed.
func (s *Service) Rematch(ctx context.Context) (model.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.MatchResult{}, ErrNotStarted
	}
	if s.last == nil {
		return model.MatchResult{}, ErrNoPreviousBooking
	}
	return s.book(ctx, *s.last)
}

// Roster returns a snapshot of every competitor.
func (s *Service) Roster() []model.Competitor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roster == nil {
		return nil
	}
	return s.roster.List()
}

// Categories returns every category profile.
func (s *Service) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog == nil {
		return nil
	}
	return s.catalog.List()
}

// Seed returns the seed the next simulation will use.
func (s *Service) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// LastResult returns the most recent simulated result, if any.
func (s *Service) LastResult() (model.MatchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return model.MatchResult{}, false
	}
	return *s.lastResult, true
}

// GetStats returns session statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"seed":       s.seed,
		"ledgerSize": s.ledgerSize,
		"applied":    s.applied,
		"duplicates": s.duplicates,
	}
	if s.started {
		stats["competitors"] = s.roster.Len()
		stats["rosterSource"] = s.roster.Source()
		stats["categories"] = s.catalog.Len()
		stats["catalogSource"] = s.catalog.Source()
		stats["pending"] = len(s.pending)
		stats["ledgerEntries"] = s.ledger.Size()
	}
	return stats
}

// newBooking must be called with s.mu held.
func (s *Service) newBooking(ctx context.Context, a, b, categoryID string) (booking.Booking, error) {
	bk, err := booking.New(a, b, categoryID, s.catalog)
	if err == nil {
		for _, id := range []string{a, b} {
			if _, ok := s.roster.Competitor(id); !ok {
				err = fmt.Errorf("%w: %q", engine.ErrUnknownCompetitor, id)
				break
			}
		}
	}
	if err != nil {
		reason := rejectReason(err)
		metrics.RecordBookingRejected(reason)
		s.logger.Debug(ctx, "booking rejected",
			logger.String("a", a),
			logger.String("b", b),
			logger.String("category", categoryID),
			logger.String("reason", reason),
		)
		return booking.Booking{}, err
	}
	return bk, nil
}

// simulate runs the engine at the current seed, advances the seed and
// remembers the booking. Must be called with s.mu held.
func (s *Service) simulate(ctx context.Context, bk booking.Booking) (model.MatchResult, error) {
	start := time.Now()
	res, err := engine.Simulate(bk, s.roster, s.catalog, s.seed)
	if err != nil {
		if errors.Is(err, engine.ErrLookup) {
			metrics.RecordLookupFailure()
		}
		s.logger.Error(ctx, "simulation failed",
			logger.String("booking", bk.String()),
			logger.Int64("seed", s.seed),
			logger.Error(err),
		)
		return model.MatchResult{}, err
	}
	metrics.RecordSimulationLatency(float64(time.Since(start).Microseconds()) / 1000)

	s.seed++
	metrics.UpdateCurrentSeed(s.seed)
	s.last = &bk
	s.lastResult = &res

	metrics.RecordBookingSimulated(res.Category.ID)
	metrics.RecordMatchRating(res.Rating)
	metrics.RecordStaminaLoss("winner", -res.Deltas[res.WinnerID].Stamina)
	metrics.RecordStaminaLoss("loser", -res.Deltas[res.LoserID].Stamina)
	if s.isUpset(res) {
		metrics.RecordUpset()
	}

	s.logger.Info(ctx, "match simulated",
		logger.String("resultID", res.ID),
		logger.String("booking", bk.String()),
		logger.Int64("seed", res.Seed),
		logger.String("winner", res.WinnerID),
		logger.Int("rating", res.Rating),
	)
	return res, nil
}

// book must be called with s.mu held.
func (s *Service) book(ctx context.Context, bk booking.Booking) (model.MatchResult, error) {
	res, err := s.simulate(ctx, bk)
	if err != nil {
		return model.MatchResult{}, err
	}
	if err := s.apply(ctx, res); err != nil {
		return model.MatchResult{}, err
	}
	return res, nil
}

// apply records res in the ledger and writes it to the roster. Must be
// called with s.mu held.
func (s *Service) apply(ctx context.Context, res model.MatchResult) error {
	if s.ledger.SeenAndRecord(ctx, res.ID) {
		s.duplicates++
		metrics.RecordResultDuplicate()
		return fmt.Errorf("%w: %s", ErrAlreadyApplied, res.ID)
	}
	if err := s.roster.Apply(res); err != nil {
		s.ledger.Unrecord(ctx, res.ID)
		s.logger.Error(ctx, "failed to apply result",
			logger.String("resultID", res.ID),
			logger.Error(err),
		)
		return err
	}
	s.applied++
	metrics.RecordResultApplied()
	s.logger.Debug(ctx, "result applied",
		logger.String("resultID", res.ID),
		logger.Any("deltas", res.Deltas),
	)
	return nil
}

// isUpset reports whether the less popular competitor won. It reads the
// popularity each side had before the result was applied.
func (s *Service) isUpset(res model.MatchResult) bool {
	w, ok1 := s.roster.Competitor(res.WinnerID)
	l, ok2 := s.roster.Competitor(res.LoserID)
	return ok1 && ok2 && w.Popularity < l.Popularity
}

// addPending remembers a previewed result, forgetting the oldest once the
// ledger size is reached. Must be called with s.mu held.
func (s *Service) addPending(res model.MatchResult) {
	if _, ok := s.pending[res.ID]; ok {
		return
	}
	if len(s.pendingOrder) >= s.ledgerSize {
		oldest := s.pendingOrder[0]
		s.pendingOrder = s.pendingOrder[1:]
		delete(s.pending, oldest)
	}
	s.pending[res.ID] = res
	s.pendingOrder = append(s.pendingOrder, res.ID)
}

func (s *Service) dropPending(id string) {
	delete(s.pending, id)
	for i, p := range s.pendingOrder {
		if p == id {
			s.pendingOrder = append(s.pendingOrder[:i], s.pendingOrder[i+1:]...)
			break
		}
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, booking.ErrMissingCompetitor):
		return "missing_competitor"
	case errors.Is(err, booking.ErrSameCompetitor):
		return "same_competitor"
	case errors.Is(err, booking.ErrMissingCategory):
		return "missing_category"
	case errors.Is(err, booking.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, engine.ErrUnknownCompetitor):
		return "unknown_competitor"
	}
	return "invalid"
}
