package handlers

import (
	"fmt"
	"strings"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	history *services.HistoryService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, history *services.HistoryService) *ProductHandler {
	return &ProductHandler{
		service: service,
		history: history,
	}
}

// RegisterRoutes registers the product routes. guards run before every
// mutating route; reads are always public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Get("/:id/history", h.HandleGetProductHistory)
	productRoutes.Post("/", chain(guards, h.HandleCreateProduct)...)
	productRoutes.Put("/:id", chain(guards, h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", chain(guards, h.HandleDeleteProduct)...)
}

func chain(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, handler)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID returns one product or 404.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "Invalid product ID.", nil)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct validates and stores a product. The Location header
// points at the identifier the store assigned.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var dto models.ProductDTO
	if err := c.BodyParser(&dto); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	product, err := h.service.AddProduct(dto)
	if err != nil {
		return respondError(c, err)
	}

	c.Location(fmt.Sprintf("%s/%d", strings.TrimRight(c.Path(), "/"), product.ID))
	return c.Status(fiber.StatusCreated).JSON(models.ToProductDTO(product))
}

// HandleUpdateProduct overwrites every field of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "Invalid product ID.", nil)
	}

	var dto models.ProductDTO
	if err := c.BodyParser(&dto); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	if err := h.service.UpdateProduct(id, dto); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondError(c, &services.Error{Kind: services.KindNotFound, Message: services.MsgProductNotFound})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetProductHistory lists recorded field changes of a product.
func (h *ProductHandler) HandleGetProductHistory(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return badRequest(c, "Invalid product ID.", nil)
	}

	entries, err := h.history.GetProductHistory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
