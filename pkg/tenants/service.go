// Package tenants implements tenant-level operations, currently only
// the admin plan upgrade.
package tenants

import (
	"context"

	"github.com/google/uuid"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
)

// TenantStore is the persistent tenant store.
type TenantStore interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	UpgradePlan(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// Service exposes tenant operations.
type Service struct {
	tenants TenantStore
}

// NewService creates a tenants service.
func NewService(tenants TenantStore) *Service {
	return &Service{tenants: tenants}
}

// Upgrade moves the caller's tenant from FREE to PRO. The ADMIN role is
// enforced at the route; here the preconditions are, in order: the slug
// must resolve (not found), the caller must belong to that tenant
// (forbidden — an admin cannot upgrade another tenant), and the tenant
// must not already be PRO (idempotence guard). One-directional: there is
// no downgrade.
func (s *Service) Upgrade(ctx context.Context, identity *auth.Identity, slug string) (*domain.Tenant, error) {
	tenant, err := s.tenants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if tenant.ID != identity.TenantID {
		return nil, domain.ErrForbidden
	}

	if tenant.Plan == domain.PlanPro {
		return nil, domain.ErrTenantAlreadyPro
	}

	return s.tenants.UpgradePlan(ctx, tenant.ID)
}
