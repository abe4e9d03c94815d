package repositories

import (
	"sort"
	"strings"
	"sync"

	"katalog/internal/models"
)

// InMemoryForbiddenWordRepository keeps the forbidden word list in a map
// keyed by the lower-cased word.
type InMemoryForbiddenWordRepository struct {
	words  map[string]models.ForbiddenWord
	nextID uint
	mu     sync.RWMutex
}

// NewInMemoryForbiddenWordRepository creates a repository preloaded with words.
func NewInMemoryForbiddenWordRepository(words ...string) *InMemoryForbiddenWordRepository {
	r := &InMemoryForbiddenWordRepository{
		words:  make(map[string]models.ForbiddenWord),
		nextID: 1,
	}
	for _, w := range words {
		_ = r.Create(&models.ForbiddenWord{Word: w})
	}
	return r
}

func (r *InMemoryForbiddenWordRepository) IsForbiddenWord(word string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.words[strings.ToLower(word)]
	return ok, nil
}

func (r *InMemoryForbiddenWordRepository) GetAll() ([]models.ForbiddenWord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.ForbiddenWord, 0, len(r.words))
	for _, w := range r.words {
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Word < list[j].Word })
	return list, nil
}

func (r *InMemoryForbiddenWordRepository) Create(word *models.ForbiddenWord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(word.Word)
	if _, ok := r.words[key]; ok {
		return ErrForbiddenWordExists
	}
	word.ID = r.nextID
	r.nextID++
	r.words[key] = *word
	return nil
}
