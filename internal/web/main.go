// Package web wires the fiber application: middleware, the authentication
// endpoints and the liveness probe, plus start and graceful shutdown.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/auth"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/config"
	fiberlogger "github.com/GoAuth-Admin/GoAuth-Admin/internal/logger/adapter/fiber"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/service"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/web/dto"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/web/handler"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/web/handler/authentication"
)

// CheckAlivePath is the liveness probe endpoint.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration and audited
// services.
func New(cfg *config.Config, svcs *service.Services) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if svcs == nil {
		panic("services cannot be nil")
	}

	hasher, err := auth.NewHasher(cfg.Webserver.Argon2Salt)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid argon2 salt")
	}

	tokens, err := auth.NewTokenService(cfg.Webserver.JWT.SigningKey, cfg.Webserver.JWT.ExpiryTime)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid jwt signing key")
	}

	gateway := auth.NewGateway(svcs, hasher, tokens)
	assembler := dto.NewAssembler(svcs.Roles, svcs.Permissions)

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "GoAuth-Admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// access logging middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// init web service
	srv := &Service{
		cfg: cfg,
		App: app,
	}
	srv.alive.Store(true)

	// liveness probe for load balancers
	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !srv.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendStatus(fiber.StatusOK)
	})

	// init handlers (they register their own routes)
	if err := authentication.Handler.Init(app, cfg, gateway, assembler); err != nil {
		log.Fatal().Err(err).Msg(handler.ErrNilACGFatalLogMsg)
	}

	return srv
}
