// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/domain/booking"
	"github.com/okian/ringside/internal/domain/engine"
	"github.com/okian/ringside/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the session implementation.
type Dependencies interface {
	BookingDependencies
	RosterDependencies
}

// Server wires HTTP routes for the booking API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	bookingsHandler *BookingsHandler
	rosterHandler   *RosterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(statsProvider),
		statsHandler:    NewStatsHandler(statsProvider),
		bookingsHandler: NewBookingsHandler(deps),
		rosterHandler:   NewRosterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/categories", MetricsMiddleware(s.rosterHandler.HandleGetCategories, "categories"))
	mux.HandleFunc("/bookings", MetricsMiddleware(s.bookingsHandler.HandleBook, "bookings"))
	mux.HandleFunc("/bookings/validate", MetricsMiddleware(s.bookingsHandler.HandleValidate, "bookings_validate"))
	mux.HandleFunc("/bookings/preview", MetricsMiddleware(s.bookingsHandler.HandlePreview, "bookings_preview"))
	mux.HandleFunc("/bookings/commit", MetricsMiddleware(s.bookingsHandler.HandleCommit, "bookings_commit"))
	mux.HandleFunc("/rematch", MetricsMiddleware(s.bookingsHandler.HandleRematch, "rematch"))
	mux.HandleFunc("/", MetricsMiddleware(writeNotFound, "unmatched"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// resultResponse is a match result plus the competitors' stats after it.
type resultResponse struct {
	Result  model.MatchResult  `json:"result"`
	Applied bool               `json:"applied"`
	Roster  []model.Competitor `json:"roster,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps session and domain errors to a status and an error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, booking.ErrMissingCompetitor),
		errors.Is(err, booking.ErrSameCompetitor),
		errors.Is(err, booking.ErrMissingCategory),
		errors.Is(err, booking.ErrUnknownCategory):
		return http.StatusBadRequest, "invalid_booking"
	case errors.Is(err, engine.ErrLookup), errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrUnknownResult):
		return http.StatusNotFound, "unknown_result"
	case errors.Is(err, service.ErrAlreadyApplied):
		return http.StatusConflict, "already_applied"
	case errors.Is(err, service.ErrNoPreviousBooking):
		return http.StatusConflict, "no_previous_booking"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_started"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

// writeNotFound answers unknown routes and unsupported methods.
func writeNotFound(w http.ResponseWriter, r *http.Request) {
	writeDomainError(w, NewKind(r.Method+" "+r.URL.Path, ErrNotFound))
}
