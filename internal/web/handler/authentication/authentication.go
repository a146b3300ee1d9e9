// Package authentication exposes the login, register and current-user
// endpoints on top of the authentication gateway.
package authentication

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/auth"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/config"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/web/dto"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/web/handler"
)

const (
	// LoginPath is the path of the login endpoint.
	LoginPath = "/login"

	// RegisterPath is the path of the registration endpoint.
	RegisterPath = "/register"

	// CurrentPath is the path of the current-user endpoint.
	CurrentPath = "/current"

	bearerPrefix = "Bearer "
)

// Service is the authentication handler service.
type Service struct {
	cfg       *config.Config
	gateway   *auth.Gateway
	assembler *dto.Assembler
	validate  *validator.Validate
}

// Handler is the authentication handler.
var Handler = Service{}

// Init initializes the authentication handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, gateway *auth.Gateway, assembler *dto.Assembler) error {
	if app == nil || cfg == nil || gateway == nil || assembler == nil {
		return errors.New(handler.ErrNilACGFatalLogMsg)
	}

	s.cfg = cfg
	s.gateway = gateway
	s.assembler = assembler
	s.validate = validator.New()

	// register routes
	app.Route(handler.RootPath, func(router fiber.Router) {
		router.Post(LoginPath, s.Login)
		router.Post(RegisterPath, s.Register)
		router.Get(CurrentPath, s.Current)
	})

	return nil
}

// Login handles the credential check and hands out a session token. Every
// authentication failure looks the same to the caller.
func (s *Service) Login(c *fiber.Ctx) error {
	var req LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, ErrInvalidRequestBody)
	}

	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, ErrInvalidCredentials)
	}

	token, err := s.gateway.Login(c.Context(), req.Username, req.Password)

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return badRequest(c, ErrInvalidCredentials)
	case err != nil:
		log.Error().Err(err).Msg("login failed")

		return internalError(c)
	}

	return c.JSON(LoginResponse{Token: token})
}

// Register handles self registration. The caller gets no session token and no
// body back; a fresh account still has to log in.
func (s *Service) Register(c *fiber.Ctx) error {
	var req RegisterRequest

	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, ErrInvalidRequestBody)
	}

	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, ErrInvalidRequestBody)
	}

	// req.Roles is deliberately not passed on; roles are assigned by the
	// gateway, never chosen by the caller.
	err := s.gateway.Register(c.Context(), req.Username, req.Email, req.FirstName, req.LastName, req.Password)

	switch {
	case repository.IsValidation(err), errors.Is(err, auth.ErrPasswordEmpty):
		return badRequest(c, err)
	case repository.IsDuplicate(err):
		return badRequest(c, err)
	case err != nil:
		log.Error().Err(err).Msg("registration failed")

		return internalError(c)
	}

	return c.SendStatus(fiber.StatusOK)
}

// Current resolves the bearer token to the full user response. Any failure on
// the authentication path yields a bare 403.
func (s *Service) Current(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.SendStatus(fiber.StatusForbidden)
	}

	user, err := s.gateway.CurrentUser(c.Context(), token)
	if err != nil {
		return c.SendStatus(fiber.StatusForbidden)
	}

	response, err := s.assembler.AssembleUser(c.Context(), *user)
	if err != nil {
		log.Error().Err(err).Str("id", user.ID).Msg("failed to assemble current user")

		return internalError(c)
	}

	return c.JSON(response)
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}

	return strings.TrimPrefix(header, bearerPrefix)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ErrInternalServerError.Error()})
}
