package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"uniqueIndex;type:varchar(20);not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null;default:0"`
	Category  Category        `json:"category" gorm:"not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ForbiddenWord is a token that may not be used as a product name.
type ForbiddenWord struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Word string `json:"word" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,max=100"`
}

// ProductHistory records a single field change on a product.
type ProductHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"index;not null"`
	FieldName  string    `json:"field_name" gorm:"type:varchar(50);not null"`
	OldValue   *string   `json:"old_value"`
	NewValue   *string   `json:"new_value"`
	ChangeDate time.Time `json:"change_date" gorm:"not null"`
}
