package handlers

import (
	_ "embed"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

//go:embed swagger.yaml
var swaggerSpec []byte

// DocsHandler serves the API description and a Redoc page rendering it.
type DocsHandler struct {
	redoc fiber.Handler
}

// NewDocsHandler creates a new DocsHandler.
func NewDocsHandler() *DocsHandler {
	opts := middleware.RedocOpts{
		SpecURL: "/swagger.yaml",
		Path:    "docs",
		Title:   "Katalog API",
	}
	return &DocsHandler{
		redoc: adaptor.HTTPHandler(middleware.Redoc(opts, nil)),
	}
}

// RegisterRoutes registers /swagger.yaml and /docs on the root router.
func (h *DocsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/swagger.yaml", h.HandleSpec)
	router.Get("/docs", h.redoc)
}

// HandleSpec serves the OpenAPI document describing the /api/v1 routes.
func (h *DocsHandler) HandleSpec(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/yaml")
	return c.Send(swaggerSpec)
}
