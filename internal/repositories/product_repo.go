package repositories

import (
	"errors"

	"katalog/internal/models"
)

var (
	// ErrProductNotFound is returned when no product matches a lookup.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProductName is returned when the store's unique index on
	// name rejects a write.
	ErrDuplicateProductName = errors.New("duplicate product name")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// GetByName matches the whole name case-insensitively.
	GetByName(name string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
