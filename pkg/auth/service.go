package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/notablyhq/notably/pkg/domain"
)

// UserStore is the credential store the login flow reads from.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// TenantStore resolves the tenant attached to a logging-in user.
type TenantStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// Service handles password authentication.
type Service struct {
	users   UserStore
	tenants TenantStore
	tokens  *TokenService
}

// NewService creates an authentication service.
func NewService(users UserStore, tenants TenantStore, tokens *TokenService) *Service {
	return &Service{users: users, tenants: tenants, tokens: tokens}
}

// LoginResult carries everything the login endpoint returns.
type LoginResult struct {
	Token  string
	User   *domain.User
	Tenant *domain.Tenant
}

// Login verifies credentials and issues a bearer token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	tenant, err := s.tenants.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user, Tenant: tenant}, nil
}
