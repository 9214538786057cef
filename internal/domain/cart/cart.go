package cart

import (
	"github.com/shopspring/decimal"

	"github.com/brewleaf/client/internal/domain/catalog"
	"github.com/brewleaf/client/internal/domain/shared"
)

// ErrInvalidQuantity indicates a line item with a quantity below one.
var ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be at least 1")

// LineItem is one product-and-quantity entry within a cart.
// The JSON field names match the backend cart resource, which also
// serves as the guest cart file format.
type LineItem struct {
	ProductID string          `json:"product"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineFromProduct builds a single-quantity line item from a catalog product.
func LineFromProduct(p catalog.Product) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		Price:     p.Price,
		Quantity:  1,
	}
}

// Cart is an ordered sequence of line items. A cart lives in exactly one
// home at a time: the backend cart resource when a session exists, or the
// local guest cart file otherwise.
type Cart struct {
	Items []LineItem
}

// New returns an empty cart.
func New() Cart {
	return Cart{Items: make([]LineItem, 0)}
}

// Add merges the item into the cart. An item for a product already present
// increments that line's quantity; otherwise the item is appended.
func (c *Cart) Add(item LineItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// Remove drops the line for the given product. Removing a product that is
// not in the cart leaves the cart unchanged.
func (c *Cart) Remove(productID string) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
}

// Find returns the line item for the given product, if present.
func (c Cart) Find(productID string) (*LineItem, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// Total returns the sum of price multiplied by quantity across all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount returns the sum of quantities across all lines, used for the
// cart badge.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
