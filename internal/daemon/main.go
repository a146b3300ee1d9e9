// Package daemon boots the application: it connects the document store,
// guarantees the unique indexes, seeds the well-known records and starts the
// web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/config"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/service"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/store"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/uniuri"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/web"
)

const devSecretLen = 32

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	store      *store.Mongo
	cfg        *config.Config
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// WaitShutdown blocks until the web service has shut down, then disconnects
// the store.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()

	if err := d.store.Disconnect(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to disconnect store")
	}
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	// in dev mode, generate throwaway secrets when none are configured
	devSecrets(cfg)

	ctx := context.Background()

	db, err := store.Connect(ctx, cfg.DB.URI, cfg.DB.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to document store")
	}

	// unique indexes are the authoritative guard for the natural keys; the
	// repository pre-checks only give friendlier errors on the common path
	ensureIndexes(ctx, db)

	svcs := service.New(db)

	seed(ctx, cfg, svcs)

	return &Daemon{
		webService: web.New(cfg, svcs),
		store:      db,
		cfg:        cfg,
	}
}

func ensureIndexes(ctx context.Context, db *store.Mongo) {
	for collection, fields := range map[string][]string{
		repository.UserCollection:       {"username", "email"},
		repository.RoleCollection:       {"name"},
		repository.PermissionCollection: {"name"},
	} {
		if err := db.EnsureUniqueIndexes(ctx, collection, fields...); err != nil {
			log.Fatal().Err(err).Str("collection", collection).Msg("failed to ensure unique indexes")
		}
	}
}

// devSecrets fills in a random salt and signing key in dev mode. Sessions and
// password hashes then do not survive a restart, which is fine for
// development and disastrous anywhere else.
func devSecrets(cfg *config.Config) {
	if !cfg.DevMode {
		return
	}

	if cfg.Webserver.Argon2Salt == "" {
		cfg.Webserver.Argon2Salt = uniuri.NewLen(devSecretLen)
		log.Warn().Msg("dev mode: generated volatile argon2 salt")
	}

	if cfg.Webserver.JWT.SigningKey == "" {
		cfg.Webserver.JWT.SigningKey = uniuri.NewLen(devSecretLen)
		log.Warn().Msg("dev mode: generated volatile jwt signing key")
	}
}
