package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// ForbiddenWordService manages the list of names products may not use.
type ForbiddenWordService struct {
	repo repositories.ForbiddenWordRepository
}

// NewForbiddenWordService creates a new ForbiddenWordService.
func NewForbiddenWordService(repo repositories.ForbiddenWordRepository) *ForbiddenWordService {
	return &ForbiddenWordService{repo: repo}
}

// GetAllForbiddenWords lists every forbidden word.
func (s *ForbiddenWordService) GetAllForbiddenWords() ([]models.ForbiddenWord, error) {
	return s.repo.GetAll()
}

// AddForbiddenWord adds word to the list, rejecting case-insensitive duplicates.
func (s *ForbiddenWordService) AddForbiddenWord(word string) (*models.ForbiddenWord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, validationError("Forbidden word is required.")
	}

	exists, err := s.repo.IsForbiddenWord(word)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &Error{Kind: KindConflict, Message: fmt.Sprintf("Forbidden word %q already exists.", word)}
	}

	fw := &models.ForbiddenWord{Word: word}
	if err := s.repo.Create(fw); err != nil {
		if errors.Is(err, repositories.ErrForbiddenWordExists) {
			return nil, &Error{Kind: KindConflict, Message: fmt.Sprintf("Forbidden word %q already exists.", word)}
		}
		return nil, err
	}
	return fw, nil
}

// Seed adds every word not already present. It is used at startup.
func (s *ForbiddenWordService) Seed(words []string) error {
	for _, w := range words {
		if _, err := s.AddForbiddenWord(w); err != nil {
			if KindOf(err) == KindConflict {
				continue
			}
			return fmt.Errorf("failed to seed forbidden word %q: %w", w, err)
		}
		log.Printf("Seeded forbidden word: %s", w)
	}
	return nil
}
