package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
)

func newTokenFixture(t *testing.T, role domain.Role) (*auth.TokenService, string, *domain.User) {
	t.Helper()

	svc := auth.NewTokenService(auth.TokenConfig{Secret: []byte("test-secret"), TTL: time.Hour})
	user := &domain.User{
		ID:       uuid.New(),
		Email:    "admin@acme.test",
		Role:     role,
		TenantID: uuid.New(),
	}
	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return svc, token, user
}

func TestRequireAuth(t *testing.T) {
	svc, token, user := newTokenFixture(t, domain.RoleAdmin)

	expired := auth.NewTokenService(auth.TokenConfig{Secret: []byte("test-secret"), TTL: -time.Minute})
	expiredToken, err := expired.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "no scheme", header: token, wantStatus: http.StatusUnauthorized},
		// The scheme prefix is case-sensitive.
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity *auth.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, _ = GetIdentity(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(svc)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				if gotIdentity == nil {
					t.Fatal("identity missing from context")
				}
				if gotIdentity.UserID != user.ID || gotIdentity.TenantID != user.TenantID {
					t.Errorf("identity = (%v, %v), want (%v, %v)",
						gotIdentity.UserID, gotIdentity.TenantID, user.ID, user.TenantID)
				}
				if gotIdentity.Role != domain.RoleAdmin {
					t.Errorf("role = %q, want %q", gotIdentity.Role, domain.RoleAdmin)
				}
			} else {
				var body map[string]string
				json.NewDecoder(rec.Body).Decode(&body)
				if body["error"] == "" {
					t.Error("error body should carry an error message")
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.Role
		allowed    []domain.Role
		wantStatus int
	}{
		{name: "admin allowed", role: domain.RoleAdmin, allowed: []domain.Role{domain.RoleAdmin}, wantStatus: http.StatusOK},
		{name: "member rejected", role: domain.RoleMember, allowed: []domain.Role{domain.RoleAdmin}, wantStatus: http.StatusForbidden},
		{name: "member allowed in wider set", role: domain.RoleMember, allowed: []domain.Role{domain.RoleAdmin, domain.RoleMember}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, token, _ := newTokenFixture(t, tt.role)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(svc)(RequireRole(tt.allowed...)(next))

			req := httptest.NewRequest(http.MethodPost, "/tenants/acme/upgrade", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	// RequireRole without RequireAuth upstream must fail closed.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without an identity")
	})

	req := httptest.NewRequest(http.MethodPost, "/tenants/acme/upgrade", nil)
	rec := httptest.NewRecorder()

	RequireRole(domain.RoleAdmin)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
