package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/okian/ringside/internal/domain/model"
)

// BookingDependencies defines the session operations the booking routes use.
type BookingDependencies interface {
	Validate(ctx context.Context, a, b, categoryID string) error
	Preview(ctx context.Context, a, b, categoryID string) (model.MatchResult, error)
	Commit(ctx context.Context, resultID string) (model.MatchResult, error)
	Book(ctx context.Context, a, b, categoryID string) (model.MatchResult, error)
	Rematch(ctx context.Context) (model.MatchResult, error)
	Roster() []model.Competitor
}

// bookingRequest is the body of POST /bookings and POST /bookings/preview.
type bookingRequest struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Category string `json:"category"`
}

type commitRequest struct {
	ID string `json:"id"`
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// BookingsHandler handles booking requests.
type BookingsHandler struct {
	deps BookingDependencies
}

// NewBookingsHandler creates a new bookings handler.
func NewBookingsHandler(deps BookingDependencies) *BookingsHandler {
	return &BookingsHandler{deps: deps}
}

// HandleValidate handles GET /bookings/validate?a=&b=&category=.
// An invalid booking is a normal answer, not an error status.
func (h *BookingsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotFound(w, r)
		return
	}
	q := r.URL.Query()
	err := h.deps.Validate(r.Context(), q.Get("a"), q.Get("b"), q.Get("category"))
	if err == nil {
		writeJSON(w, http.StatusOK, validateResponse{Valid: true})
		return
	}
	status, code := classify(err)
	if status == http.StatusServiceUnavailable || status == http.StatusInternalServerError {
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: false, Reason: err.Error()})
}

// HandlePreview handles POST /bookings/preview requests.
func (h *BookingsHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.preview_booking"
	req, ok := decodeBooking(w, r, op)
	if !ok {
		return
	}
	res, err := h.deps.Preview(r.Context(), req.A, req.B, req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: res})
}

// HandleCommit handles POST /bookings/commit requests.
func (h *BookingsHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	const op = "api.commit_result"
	if r.Method != http.MethodPost {
		writeNotFound(w, r)
		return
	}
	var req commitRequest
	if err := decodeBody(r.Body, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeDomainError(w, WrapKind(op, ErrBadRequest, errors.New("missing id")))
		return
	}
	res, err := h.deps.Commit(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: res, Applied: true, Roster: h.deps.Roster()})
}

// HandleBook handles POST /bookings requests: validate, simulate and apply.
func (h *BookingsHandler) HandleBook(w http.ResponseWriter, r *http.Request) {
	const op = "api.book"
	req, ok := decodeBooking(w, r, op)
	if !ok {
		return
	}
	res, err := h.deps.Book(r.Context(), req.A, req.B, req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resultResponse{Result: res, Applied: true, Roster: h.deps.Roster()})
}

// HandleRematch handles POST /rematch requests.
func (h *BookingsHandler) HandleRematch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeNotFound(w, r)
		return
	}
	res, err := h.deps.Rematch(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resultResponse{Result: res, Applied: true, Roster: h.deps.Roster()})
}

func decodeBooking(w http.ResponseWriter, r *http.Request, op string) (bookingRequest, bool) {
	var req bookingRequest
	if r.Method != http.MethodPost {
		writeNotFound(w, r)
		return req, false
	}
	if err := decodeBody(r.Body, &req); err != nil {
		writeDomainError(w, WrapKind(op, ErrBadRequest, err))
		return req, false
	}
	return req, true
}

func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
