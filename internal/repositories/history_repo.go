package repositories

import (
	"fmt"
	"sort"
	"sync"

	"katalog/internal/models"

	"gorm.io/gorm"
)

// HistoryRepository stores product change records.
type HistoryRepository interface {
	Create(entries []models.ProductHistory) error
	GetByProductID(productID uint) ([]models.ProductHistory, error)
}

// GORMHistoryRepository is a GORM implementation of HistoryRepository.
type GORMHistoryRepository struct {
	db *gorm.DB
}

// NewGORMHistoryRepository creates a new instance of GORMHistoryRepository.
func NewGORMHistoryRepository(db *gorm.DB) *GORMHistoryRepository {
	return &GORMHistoryRepository{db: db}
}

// Create inserts all entries in a single statement.
func (r *GORMHistoryRepository) Create(entries []models.ProductHistory) error {
	if len(entries) == 0 {
		return nil
	}
	if err := r.db.Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to create product history: %w", err)
	}
	return nil
}

// GetByProductID returns a product's history, oldest first.
func (r *GORMHistoryRepository) GetByProductID(productID uint) ([]models.ProductHistory, error) {
	var entries []models.ProductHistory
	err := r.db.Where("product_id = ?", productID).Order("change_date, id").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get history for product %d: %w", productID, err)
	}
	return entries, nil
}

// InMemoryHistoryRepository is an in-memory implementation of HistoryRepository.
type InMemoryHistoryRepository struct {
	entries []models.ProductHistory
	mu      sync.RWMutex
}

// NewInMemoryHistoryRepository creates a new instance of InMemoryHistoryRepository.
func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{}
}

func (r *InMemoryHistoryRepository) Create(entries []models.ProductHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		e.ID = uint(len(r.entries) + 1)
		r.entries = append(r.entries, e)
	}
	return nil
}

func (r *InMemoryHistoryRepository) GetByProductID(productID uint) ([]models.ProductHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ProductHistory, 0)
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangeDate.Before(out[j].ChangeDate) })
	return out, nil
}
