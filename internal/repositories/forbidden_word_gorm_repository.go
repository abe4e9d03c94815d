package repositories

import (
	"errors"
	"fmt"

	"katalog/internal/models"

	"gorm.io/gorm"
)

// GORMForbiddenWordRepository is a GORM implementation of ForbiddenWordRepository.
type GORMForbiddenWordRepository struct {
	db *gorm.DB
}

// NewGORMForbiddenWordRepository creates a new instance of GORMForbiddenWordRepository.
func NewGORMForbiddenWordRepository(db *gorm.DB) *GORMForbiddenWordRepository {
	return &GORMForbiddenWordRepository{db: db}
}

func (r *GORMForbiddenWordRepository) IsForbiddenWord(word string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ForbiddenWord{}).
		Where("LOWER(word) = LOWER(?)", word).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up forbidden word: %w", err)
	}
	return count > 0, nil
}

func (r *GORMForbiddenWordRepository) GetAll() ([]models.ForbiddenWord, error) {
	var words []models.ForbiddenWord
	if err := r.db.Order("word").Find(&words).Error; err != nil {
		return nil, fmt.Errorf("failed to get forbidden words: %w", err)
	}
	return words, nil
}

func (r *GORMForbiddenWordRepository) Create(word *models.ForbiddenWord) error {
	if err := r.db.Create(word).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrForbiddenWordExists
		}
		return fmt.Errorf("failed to create forbidden word: %w", err)
	}
	return nil
}
