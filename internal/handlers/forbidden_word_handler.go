package handlers

import (
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ForbiddenWordHandler exposes the forbidden word list.
type ForbiddenWordHandler struct {
	service  *services.ForbiddenWordService
	validate *validator.Validate
}

// NewForbiddenWordHandler creates a new ForbiddenWordHandler.
func NewForbiddenWordHandler(service *services.ForbiddenWordService) *ForbiddenWordHandler {
	return &ForbiddenWordHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the forbidden word routes; guards protect writes.
func (h *ForbiddenWordHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	wordRoutes := router.Group("/forbidden-words")
	wordRoutes.Get("/", h.HandleGetForbiddenWords)
	wordRoutes.Post("/", chain(guards, h.HandleAddForbiddenWord)...)
}

func (h *ForbiddenWordHandler) HandleGetForbiddenWords(c *fiber.Ctx) error {
	words, err := h.service.GetAllForbiddenWords()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(words)
}

func (h *ForbiddenWordHandler) HandleAddForbiddenWord(c *fiber.Ctx) error {
	var req models.ForbiddenWord
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	word, err := h.service.AddForbiddenWord(req.Word)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(word)
}
