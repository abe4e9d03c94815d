package repositories

import (
	"errors"

	"katalog/internal/models"
)

// ErrForbiddenWordExists is returned when adding a word already on the list.
var ErrForbiddenWordExists = errors.New("forbidden word already exists")

// ForbiddenWordRepository defines the interface for forbidden word lookups.
type ForbiddenWordRepository interface {
	// IsForbiddenWord reports whether word is on the list, ignoring case.
	IsForbiddenWord(word string) (bool, error)
	GetAll() ([]models.ForbiddenWord, error)
	Create(word *models.ForbiddenWord) error
}
