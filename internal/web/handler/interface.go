package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/auth"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/config"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/web/dto"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, gateway *auth.Gateway, assembler *dto.Assembler) error
}
