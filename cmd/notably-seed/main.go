// Command notably-seed provisions the demo tenants and users: two
// FREE-plan tenants (acme, globex), each with an ADMIN and a MEMBER,
// all with password "password". Safe to run repeatedly.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/notablyhq/notably/internal/config"
	"github.com/notablyhq/notably/pkg/auth"
	"github.com/notablyhq/notably/pkg/domain"
	"github.com/notablyhq/notably/pkg/repository"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tenantsRepo := repository.NewTenantsRepository(db)
	usersRepo := repository.NewUsersRepository(db)

	passwordHash, err := auth.HashPassword("password")
	if err != nil {
		logger.Error("failed to hash seed password", "error", err)
		os.Exit(1)
	}

	seeds := []struct {
		name  string
		slug  string
		users []struct {
			email string
			role  domain.Role
		}
	}{
		{
			name: "Acme Corporation",
			slug: "acme",
			users: []struct {
				email string
				role  domain.Role
			}{
				{"admin@acme.test", domain.RoleAdmin},
				{"user@acme.test", domain.RoleMember},
			},
		},
		{
			name: "Globex Corporation",
			slug: "globex",
			users: []struct {
				email string
				role  domain.Role
			}{
				{"admin@globex.test", domain.RoleAdmin},
				{"user@globex.test", domain.RoleMember},
			},
		},
	}

	for _, seed := range seeds {
		tenant, err := tenantsRepo.GetBySlugForUpsert(ctx, seed.slug)
		if err != nil {
			logger.Error("failed to look up tenant", "slug", seed.slug, "error", err)
			os.Exit(1)
		}

		err = repository.Tx(ctx, db, func(tx *sql.Tx) error {
			if tenant == nil {
				now := time.Now()
				tenant = &domain.Tenant{
					ID:        uuid.New(),
					Name:      seed.name,
					Slug:      seed.slug,
					Plan:      domain.PlanFree,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := tenantsRepo.CreateTx(ctx, tx, tenant); err != nil {
					return err
				}
			}

			for _, u := range seed.users {
				exists, err := usersRepo.ExistsByEmailAndTenant(ctx, u.email, tenant.ID)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				now := time.Now()
				user := &domain.User{
					ID:           uuid.New(),
					Email:        u.email,
					PasswordHash: passwordHash,
					Role:         u.role,
					TenantID:     tenant.ID,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				if err := usersRepo.CreateTx(ctx, tx, user); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			logger.Error("failed to seed tenant", "slug", seed.slug, "error", err)
			os.Exit(1)
		}

		logger.Info("seeded tenant", "slug", seed.slug)
	}

	logger.Info("database seeded")
}
