package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/notablyhq/notably/internal/config"
	"github.com/notablyhq/notably/internal/http/features/authn"
	"github.com/notablyhq/notably/internal/http/features/notes"
	"github.com/notablyhq/notably/internal/http/features/tenants"
	"github.com/notablyhq/notably/internal/http/middleware"
	"github.com/notablyhq/notably/internal/httputil"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
	notesvc "github.com/notablyhq/notably/pkg/notes"
	tenantsvc "github.com/notablyhq/notably/pkg/tenants"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	TokenService       *auth.TokenService
	NotesService       *notesvc.Service
	TenantsService     *tenantsvc.Service
	StoreTimeout       time.Duration
	MaxRequestBodySize int64
	RateLimitConfig    config.RateLimitConfig
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	if cfg.StoreTimeout == 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	if cfg.MaxRequestBodySize == 0 {
		cfg.MaxRequestBodySize = 1 << 20
	}

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))
	r.Use(middleware.Timeout(cfg.StoreTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimiters := middleware.CreateRateLimiters(cfg.RateLimitConfig, cfg.Logger)

	// Login
	authHandler := authn.NewHandler(cfg.Logger, cfg.AuthService)
	r.Group(func(r chi.Router) {
		r.Use(rateLimiters["auth"])
		r.Post("/auth/login", authHandler.Login)
	})

	// Notes CRUD, tenant-scoped via the authenticated identity
	notesHandler := notes.NewHandler(cfg.Logger, cfg.NotesService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.TokenService))
		r.Use(rateLimiters["api"])
		r.Get("/notes", notesHandler.List)
		r.Post("/notes", notesHandler.Create)
		r.Get("/notes/{id}", notesHandler.Get)
		r.Put("/notes/{id}", notesHandler.Update)
		r.Delete("/notes/{id}", notesHandler.Delete)
	})

	// Admin-only tenant upgrade
	tenantsHandler := tenants.NewHandler(cfg.Logger, cfg.TenantsService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.TokenService))
		r.Use(middleware.RequireRole(domain.RoleAdmin))
		r.Use(rateLimiters["api"])
		r.Post("/tenants/{slug}/upgrade", tenantsHandler.Upgrade)
	})

	return r
}
