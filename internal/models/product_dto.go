package models

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceScale is the number of decimal places the store keeps for a price.
const PriceScale = 2

// ProductDTO is the wire shape of a product. It carries no identifier.
type ProductDTO struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Category Category        `json:"category"`
}

// ToProductDTO projects a stored product onto its wire shape.
func ToProductDTO(p *Product) ProductDTO {
	return ProductDTO{
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
		Category: p.Category,
	}
}

// ToProductDTOs projects a list of stored products.
func ToProductDTOs(products []Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, ToProductDTO(&products[i]))
	}
	return dtos
}

// Normalize rounds the price to PriceScale places.
func (d ProductDTO) Normalize() ProductDTO {
	d.Price = d.Price.Round(PriceScale)
	return d
}

// ApplyTo copies every field of the DTO onto p, leaving its identity alone.
func (d ProductDTO) ApplyTo(p *Product) {
	p.Name = d.Name
	p.Price = d.Price
	p.Quantity = d.Quantity
	p.Category = d.Category
}

// ToProduct builds a new, not yet persisted product from the DTO.
func (d ProductDTO) ToProduct() *Product {
	p := &Product{}
	d.ApplyTo(p)
	return p
}
