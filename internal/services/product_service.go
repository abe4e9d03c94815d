package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPublisher delivers product events to whoever records history.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

type priceRange struct {
	min, max decimal.Decimal
}

var categoryPriceRanges = map[models.Category]priceRange{
	models.CategoryElectronics: {decimal.NewFromInt(50), decimal.NewFromInt(50000)},
	models.CategoryBooks:       {decimal.NewFromInt(5), decimal.NewFromInt(500)},
	models.CategoryClothing:    {decimal.NewFromInt(10), decimal.NewFromInt(5000)},
}

// ProductService validates product data before it reaches the repository.
type ProductService struct {
	repo      repositories.ProductRepository
	forbidden repositories.ForbiddenWordRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, forbidden repositories.ForbiddenWordRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		forbidden: forbidden,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// GetAllProducts returns every product in its wire shape.
func (s *ProductService) GetAllProducts() ([]models.ProductDTO, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return models.ToProductDTOs(products), nil
}

// GetProductByID returns a single product in its wire shape.
func (s *ProductService) GetProductByID(id uint) (*models.ProductDTO, error) {
	product, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}
	dto := models.ToProductDTO(product)
	return &dto, nil
}

// AddProduct validates dto and stores it as a new product. The price is
// rounded to the stored scale first, so the validated price is the stored one.
func (s *ProductService) AddProduct(dto models.ProductDTO) (*models.Product, error) {
	dto = dto.Normalize()
	if err := s.validateProduct(dto); err != nil {
		return nil, err
	}

	product := dto.ToProduct()
	if err := s.repo.Create(product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateProductName) {
			return nil, validationError(MsgNameTaken)
		}
		return nil, err
	}

	s.publish(models.ProductCreated, product.ID, nil)
	return product, nil
}

// UpdateProduct re-validates dto exactly as AddProduct does and overwrites
// every field of the product with the given id.
//
// The duplicate-name check does not exclude the product being updated, so
// saving a product under its current name is rejected.
func (s *ProductService) UpdateProduct(id uint, dto models.ProductDTO) error {
	product, err := s.findProduct(id)
	if err != nil {
		return err
	}

	dto = dto.Normalize()
	if err := s.validateProduct(dto); err != nil {
		return err
	}

	before := *product
	dto.ApplyTo(product)
	if err := s.repo.Update(product); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateProductName):
			return validationError(MsgNameTaken)
		case errors.Is(err, repositories.ErrProductNotFound):
			return notFoundError(MsgProductNotFound)
		}
		return err
	}

	if changes := models.DiffProducts(&before, product); len(changes) > 0 {
		s.publish(models.ProductUpdated, product.ID, changes)
	}
	return nil
}

// DeleteProduct removes the product with the given id.
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.findProduct(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFoundError(MsgProductNotFound)
		}
		return err
	}

	s.publish(models.ProductDeleted, id, nil)
	return nil
}

// IsProductNameForbidden reports whether name is on the forbidden word list.
func (s *ProductService) IsProductNameForbidden(name string) (bool, error) {
	return s.forbidden.IsForbiddenWord(name)
}

func (s *ProductService) findProduct(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, notFoundError(MsgProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

// validateProduct runs the name, price and quantity checks in that order and
// stops at the first failure.
func (s *ProductService) validateProduct(dto models.ProductDTO) error {
	if err := s.validateName(dto.Name); err != nil {
		return err
	}
	if err := validatePrice(dto.Category, dto.Price); err != nil {
		return err
	}
	return validateQuantity(dto.Quantity)
}

func (s *ProductService) validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validationError(MsgNameRequired)
	}
	// min/max count characters, not bytes.
	if err := s.validate.Var(name, "min=3,max=20"); err != nil {
		return validationError(MsgNameLength)
	}
	if err := s.validate.Var(name, "alphanum"); err != nil {
		return validationError(MsgNameCharacters)
	}

	forbidden, err := s.forbidden.IsForbiddenWord(name)
	if err != nil {
		return err
	}
	if forbidden {
		return validationError(MsgNameForbidden)
	}

	_, err = s.repo.GetByName(name)
	switch {
	case err == nil:
		return validationError(MsgNameTaken)
	case errors.Is(err, repositories.ErrProductNotFound):
		return nil
	default:
		return err
	}
}

func validatePrice(category models.Category, price decimal.Decimal) error {
	if !category.Valid() {
		return validationError(MsgInvalidCategory)
	}
	bounds := categoryPriceRanges[category]
	if price.LessThan(bounds.min) || price.GreaterThan(bounds.max) {
		return validationError(fmt.Sprintf("Price for %s must be between %s and %s.", category, bounds.min, bounds.max))
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return validationError(MsgNegativeQuantity)
	}
	return nil
}

// publish hands an event to the publisher. Failures are logged only; the
// product change has already been committed.
func (s *ProductService) publish(eventType models.ProductEventType, productID uint, changes []models.FieldChange) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		ProductID:  productID,
		Changes:    changes,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", eventType, productID, err)
	}
}
