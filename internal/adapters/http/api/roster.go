package api

import (
	"net/http"

	"github.com/okian/ringside/internal/domain/model"
)

// RosterDependencies defines the read-only views of the session.
type RosterDependencies interface {
	Roster() []model.Competitor
	Categories() []model.Category
}

// RosterHandler serves the roster and the category catalog.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleGetRoster handles GET /roster requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Roster())
}

// HandleGetCategories handles GET /categories requests.
func (h *RosterHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Categories())
}
