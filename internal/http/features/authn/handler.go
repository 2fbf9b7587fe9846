// Package authn exposes the login endpoint.
package authn

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/notablyhq/notably/internal/httputil"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
	"github.com/notablyhq/notably/pkg/repository"
)

// Handler handles authentication endpoints.
type Handler struct {
	logger      *slog.Logger
	authService *auth.Service
}

// NewHandler creates a new authentication handler.
func NewHandler(logger *slog.Logger, authService *auth.Service) *Handler {
	return &Handler{logger: logger, authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the user payload returned on login.
type UserResponse struct {
	ID     uuid.UUID      `json:"id"`
	Email  string         `json:"email"`
	Role   domain.Role    `json:"role"`
	Tenant *domain.Tenant `json:"tenant"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Login handles user login.
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if repository.IsUnavailable(err) {
			h.logger.Error("login store unavailable", "error", err)
			httputil.Error(w, http.StatusServiceUnavailable, "Database connection failed. Please try again later.")
			return
		}
		h.logger.Error("login failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httputil.JSON(w, http.StatusOK, LoginResponse{
		Token: result.Token,
		User: UserResponse{
			ID:     result.User.ID,
			Email:  result.User.Email,
			Role:   result.User.Role,
			Tenant: result.Tenant,
		},
	})
}
