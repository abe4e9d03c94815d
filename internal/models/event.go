package models

import (
	"strconv"
	"time"
)

// ProductEventType names what happened to a product.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// FieldChange is one field's before and after value, rendered as text.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// ProductEvent is published on every successful product mutation.
type ProductEvent struct {
	ID         string           `json:"id"`
	Type       ProductEventType `json:"type"`
	ProductID  uint             `json:"product_id"`
	Changes    []FieldChange    `json:"changes,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// DiffProducts lists the fields that differ between before and after.
func DiffProducts(before, after *Product) []FieldChange {
	var changes []FieldChange
	if before.Name != after.Name {
		changes = append(changes, FieldChange{Field: "Name", OldValue: before.Name, NewValue: after.Name})
	}
	if !before.Price.Equal(after.Price) {
		changes = append(changes, FieldChange{Field: "Price", OldValue: before.Price.String(), NewValue: after.Price.String()})
	}
	if before.Quantity != after.Quantity {
		changes = append(changes, FieldChange{
			Field:    "Quantity",
			OldValue: strconv.Itoa(before.Quantity),
			NewValue: strconv.Itoa(after.Quantity),
		})
	}
	if before.Category != after.Category {
		changes = append(changes, FieldChange{Field: "Category", OldValue: before.Category.String(), NewValue: after.Category.String()})
	}
	return changes
}
