package daemon

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/auth"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/config"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/service"
)

const (
	adminUsername = "admin"
	adminEmail    = "admin@localhost"

	// change after first login
	adminPassword = "changeme"
)

// seed creates the well-known records a fresh installation needs: the default
// role attached to self-registered users and an initial admin account.
func seed(ctx context.Context, cfg *config.Config, svcs *service.Services) {
	defaultRole := seedDefaultRole(ctx, svcs)
	seedAdminUser(ctx, cfg, svcs, defaultRole)
}

func seedDefaultRole(ctx context.Context, svcs *service.Services) *models.Role {
	role, err := svcs.Roles.FindByName(ctx, service.SystemActor, models.DefaultRoleName)
	if err == nil {
		return role
	}

	if !repository.IsNotFound(err) {
		log.Fatal().Err(err).Msg("failed to look up default role")
	}

	role, err = svcs.Roles.Create(ctx, service.SystemActor, models.NewRole(models.DefaultRoleName, nil))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed default role")
	}

	log.Info().Str("id", role.ID).Msg("seeded default role")

	return role
}

func seedAdminUser(ctx context.Context, cfg *config.Config, svcs *service.Services, defaultRole *models.Role) {
	users, err := svcs.Users.FindAll(ctx, service.SystemActor)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to look up users for seeding")
	}

	if len(users) > 0 {
		return
	}

	hasher, err := auth.NewHasher(cfg.Webserver.Argon2Salt)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid argon2 salt")
	}

	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	var roles []string
	if defaultRole != nil {
		roles = []string{defaultRole.ID}
	}

	admin := models.NewUser(adminUsername, adminEmail, "Admin", "", hash, roles)

	if _, err = svcs.Users.Create(ctx, service.SystemActor, admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	log.Warn().Str("username", adminUsername).Msg("seeded initial admin user with default password, change it")
}
