// Package notes exposes the tenant-scoped note CRUD endpoints.
package notes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/notablyhq/notably/internal/http/middleware"
	"github.com/notablyhq/notably/internal/httputil"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
	notesvc "github.com/notablyhq/notably/pkg/notes"
	"github.com/notablyhq/notably/pkg/repository"
)

// Handler handles note endpoints.
type Handler struct {
	logger  *slog.Logger
	service *notesvc.Service
}

// NewHandler creates a new notes handler.
func NewHandler(logger *slog.Logger, service *notesvc.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// NoteRequest represents a create or update request body.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// List handles listing the caller's tenant's notes.
// GET /notes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notes, err := h.service.List(r.Context(), identity)
	if err != nil {
		h.writeError(w, err, "list notes")
		return
	}

	httputil.JSON(w, http.StatusOK, notes)
}

// Create handles note creation, subject to the free-plan quota.
// POST /notes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	note, err := h.service.Create(r.Context(), identity, req.Title, req.Content)
	if err != nil {
		h.writeError(w, err, "create note")
		return
	}

	httputil.JSON(w, http.StatusCreated, note)
}

// Get handles fetching a single note.
// GET /notes/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	note, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		h.writeError(w, err, "get note")
		return
	}

	httputil.JSON(w, http.StatusOK, note)
}

// Update handles note updates.
// PUT /notes/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	note, err := h.service.Update(r.Context(), identity, id, req.Title, req.Content)
	if err != nil {
		h.writeError(w, err, "update note")
		return
	}

	httputil.JSON(w, http.StatusOK, note)
}

// Delete handles note deletion.
// DELETE /notes/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.identityAndID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		h.writeError(w, err, "delete note")
		return
	}

	httputil.JSON(w, http.StatusOK, MessageResponse{Message: "Note deleted successfully"})
}

// identityAndID pulls the identity context and the {id} URL parameter.
// A non-UUID id cannot match any row, so it is reported as not found
// rather than as a validation error.
func (h *Handler) identityAndID(w http.ResponseWriter, r *http.Request) (*auth.Identity, uuid.UUID, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
		return nil, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "Note not found")
		return nil, uuid.Nil, false
	}

	return identity, id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrNoteFieldsRequired):
		httputil.Error(w, http.StatusBadRequest, "Title and content are required")
	case errors.Is(err, domain.ErrNoteNotFound):
		httputil.Error(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, domain.ErrTenantNotFound):
		httputil.Error(w, http.StatusNotFound, "Tenant not found")
	case errors.Is(err, domain.ErrQuotaExceeded):
		httputil.Error(w, http.StatusForbidden, "Free plan limited to 3 notes. Upgrade to Pro for unlimited notes.")
	case repository.IsUnavailable(err):
		h.logger.Error(op+" store unavailable", "error", err)
		httputil.Error(w, http.StatusServiceUnavailable, "Database connection failed. Please try again later.")
	default:
		h.logger.Error(op+" failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
