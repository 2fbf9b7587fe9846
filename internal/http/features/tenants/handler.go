// Package tenants exposes the admin plan-upgrade endpoint.
package tenants

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/notablyhq/notably/internal/http/middleware"
	"github.com/notablyhq/notably/internal/httputil"
	"github.com/notablyhq/notably/pkg/domain"
	"github.com/notablyhq/notably/pkg/repository"
	tenantsvc "github.com/notablyhq/notably/pkg/tenants"
)

// Handler handles tenant endpoints.
type Handler struct {
	logger  *slog.Logger
	service *tenantsvc.Service
}

// NewHandler creates a new tenants handler.
func NewHandler(logger *slog.Logger, service *tenantsvc.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// UpgradeResponse represents a successful upgrade.
type UpgradeResponse struct {
	Message string         `json:"message"`
	Tenant  *domain.Tenant `json:"tenant"`
}

// Upgrade handles the FREE-to-PRO plan upgrade. The route requires the
// ADMIN role before this handler runs.
// POST /tenants/{slug}/upgrade
func (h *Handler) Upgrade(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tenant, err := h.service.Upgrade(r.Context(), identity, chi.URLParam(r, "slug"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			httputil.Error(w, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, domain.ErrForbidden):
			httputil.Error(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, domain.ErrTenantAlreadyPro):
			httputil.Error(w, http.StatusBadRequest, "Tenant already on Pro plan")
		case repository.IsUnavailable(err):
			h.logger.Error("upgrade store unavailable", "error", err)
			httputil.Error(w, http.StatusServiceUnavailable, "Database connection failed. Please try again later.")
		default:
			h.logger.Error("upgrade failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	httputil.JSON(w, http.StatusOK, UpgradeResponse{
		Message: "Tenant upgraded to Pro successfully",
		Tenant:  tenant,
	})
}
