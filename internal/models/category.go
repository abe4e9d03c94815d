package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of product categories. It is stored by ordinal.
type Category int

const (
	CategoryElectronics Category = iota
	CategoryBooks
	CategoryClothing

	// CategoryInvalid is what unknown names decode to, so the service can
	// reject them with its own message instead of a body parse error.
	CategoryInvalid Category = -1
)

var categoryNames = map[Category]string{
	CategoryElectronics: "Electronics",
	CategoryBooks:       "Books",
	CategoryClothing:    "Clothing",
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return CategoryInvalid, false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalJSON encodes known categories by name and unknown ones by ordinal.
func (c Category) MarshalJSON() ([]byte, error) {
	if n, ok := categoryNames[c]; ok {
		return json.Marshal(n)
	}
	return json.Marshal(int(c))
}

// UnmarshalJSON accepts either the category name or its ordinal.
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*c, _ = ParseCategory(name)
		return nil
	}

	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err != nil {
		return fmt.Errorf("category must be a name or an ordinal: %w", err)
	}
	*c = Category(ordinal)
	return nil
}
