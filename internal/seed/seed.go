package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/app/repositories"
	"github.com/kaganyildiz/academix/internal/pkg/auth"
	"github.com/kaganyildiz/academix/internal/pkg/logger"
)

const defaultAdminUsername = "admin"

// EnsureAdminAccount creates the bootstrap admin account when no admin
// exists yet. The password comes from ADMIN_PASSWORD; without it a fresh
// database simply starts with no admin, which is logged.
func EnsureAdminAccount(ctx context.Context, pool *pgxpool.Pool) error {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role = 'admin')`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Warn().Msg("No admin account exists and ADMIN_PASSWORD is not set, skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	userRepo := repositories.NewUserRepository(pool)
	admin := &models.User{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.CreateAdminUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	logger.Info().Str("username", defaultAdminUsername).Msg("Seeded initial admin account")
	return nil
}
