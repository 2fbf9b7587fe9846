package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/notablyhq/notably/pkg/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Email:    "admin@acme.test",
		Role:     domain.RoleAdmin,
		TenantID: uuid.New(),
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: []byte("test-secret"), Issuer: "notably"})
	user := testUser()

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.Subject != user.ID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.TenantID != user.TenantID.String() {
		t.Errorf("TenantID = %q, want %q", claims.TenantID, user.TenantID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleAdmin)
	}

	identity, err := IdentityFromClaims(claims)
	if err != nil {
		t.Fatalf("IdentityFromClaims failed: %v", err)
	}
	if identity.UserID != user.ID || identity.TenantID != user.TenantID {
		t.Errorf("identity ids = (%v, %v), want (%v, %v)",
			identity.UserID, identity.TenantID, user.ID, user.TenantID)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: []byte("test-secret")})
	if svc.TTL() != 7*24*time.Hour {
		t.Errorf("TTL = %v, want %v", svc.TTL(), 7*24*time.Hour)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: []byte("test-secret"), TTL: -time.Minute})

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("Validate(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Invalid(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: []byte("test-secret")})
	other := NewTokenService(TokenConfig{Secret: []byte("other-secret")})

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
		svc   *TokenService
	}{
		{name: "malformed", token: "not-a-token", svc: svc},
		{name: "empty", token: "", svc: svc},
		{name: "tampered", token: token + "x", svc: svc},
		{name: "wrong signing key", token: token, svc: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.Validate(tt.token); !errors.Is(err, domain.ErrInvalidToken) {
				t.Errorf("Validate error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestIdentityFromClaims_BadClaims(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: []byte("test-secret")})
	user := testUser()

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Claims)
	}{
		{name: "bad subject", mutate: func(c *Claims) { c.Subject = "nope" }},
		{name: "bad tenant id", mutate: func(c *Claims) { c.TenantID = "nope" }},
		{name: "unknown role", mutate: func(c *Claims) { c.Role = "OWNER" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *claims
			tt.mutate(&c)
			if _, err := IdentityFromClaims(&c); !errors.Is(err, domain.ErrInvalidToken) {
				t.Errorf("IdentityFromClaims error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
