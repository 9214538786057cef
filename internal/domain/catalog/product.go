package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a menu item as exposed by the backend catalog.
// Products are read-only on the client: they are displayed and referenced
// by ID when building cart lines, never mutated.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
	MoodTags    []string        `json:"moodTags,omitempty"`
}

// FindByID returns the product with the given ID from a listing.
func FindByID(products []Product, id string) (*Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], true
		}
	}
	return nil, false
}
