package tenants

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
)

type fakeTenantStore struct {
	tenants map[string]*domain.Tenant
}

func (f *fakeTenantStore) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	tenant, ok := f.tenants[slug]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	return tenant, nil
}

func (f *fakeTenantStore) UpgradePlan(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	for _, tenant := range f.tenants {
		if tenant.ID == id {
			if tenant.Plan == domain.PlanPro {
				return nil, domain.ErrTenantAlreadyPro
			}
			tenant.Plan = domain.PlanPro
			return tenant, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

func newFixture() (*Service, *fakeTenantStore, *auth.Identity) {
	acme := &domain.Tenant{ID: uuid.New(), Name: "Acme", Slug: "acme", Plan: domain.PlanFree}
	globex := &domain.Tenant{ID: uuid.New(), Name: "Globex", Slug: "globex", Plan: domain.PlanFree}
	store := &fakeTenantStore{tenants: map[string]*domain.Tenant{"acme": acme, "globex": globex}}

	admin := &auth.Identity{
		UserID:   uuid.New(),
		TenantID: acme.ID,
		Email:    "admin@acme.test",
		Role:     domain.RoleAdmin,
	}
	return NewService(store), store, admin
}

func TestService_Upgrade(t *testing.T) {
	svc, store, admin := newFixture()

	tenant, err := svc.Upgrade(context.Background(), admin, "acme")
	if err != nil {
		t.Fatalf("Upgrade failed: %v", err)
	}
	if tenant.Plan != domain.PlanPro {
		t.Errorf("Plan = %q, want %q", tenant.Plan, domain.PlanPro)
	}
	if store.tenants["acme"].Plan != domain.PlanPro {
		t.Error("upgrade was not persisted")
	}
}

func TestService_Upgrade_Idempotence(t *testing.T) {
	svc, store, admin := newFixture()
	ctx := context.Background()

	if _, err := svc.Upgrade(ctx, admin, "acme"); err != nil {
		t.Fatalf("first Upgrade failed: %v", err)
	}

	// Second call is rejected and the plan stays PRO.
	if _, err := svc.Upgrade(ctx, admin, "acme"); !errors.Is(err, domain.ErrTenantAlreadyPro) {
		t.Errorf("second Upgrade error = %v, want ErrTenantAlreadyPro", err)
	}
	if store.tenants["acme"].Plan != domain.PlanPro {
		t.Error("plan changed after rejected second upgrade")
	}
}

func TestService_Upgrade_UnknownSlug(t *testing.T) {
	svc, _, admin := newFixture()

	if _, err := svc.Upgrade(context.Background(), admin, "initech"); !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("Upgrade error = %v, want ErrTenantNotFound", err)
	}
}

func TestService_Upgrade_OtherTenantForbidden(t *testing.T) {
	svc, store, admin := newFixture()

	// An admin of acme cannot upgrade globex, even though the slug
	// resolves.
	if _, err := svc.Upgrade(context.Background(), admin, "globex"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Upgrade error = %v, want ErrForbidden", err)
	}
	if store.tenants["globex"].Plan != domain.PlanFree {
		t.Error("foreign tenant's plan must not change")
	}
}
