// Package term renders view models into terminal text. Every function is
// pure: no I/O, no state, input in, string out.
package term

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/brewleaf/client/internal/domain/cart"
	"github.com/brewleaf/client/internal/domain/catalog"
	"github.com/brewleaf/client/internal/domain/identity"
	"github.com/brewleaf/client/internal/domain/order"
)

// User-facing empty and failure states
const (
	EmptyCartMessage   = "Your cart is empty."
	NoOrdersMessage    = "You have no past orders."
	MenuFailureMessage = "Sorry, we could not load the menu at this time."
	NoMoodMatchMessage = "Sorry, we couldn't find a match for that mood."
	MoodFailureMessage = "Could not load recommendations at this time."
	OrdersFailure      = "Could not load order history."
)

// Cart renders the cart contents with a per-line unit price and quantity and
// a trailing total.
func Cart(c cart.Cart) string {
	if c.IsEmpty() {
		return EmptyCartMessage + "\n"
	}

	var b strings.Builder
	for _, item := range c.Items {
		fmt.Fprintf(&b, "%s\n  ₹%s x %d = ₹%s  (remove: %s)\n",
			item.Name,
			item.Price.StringFixed(2),
			item.Quantity,
			item.Subtotal().StringFixed(2),
			item.ProductID)
	}
	fmt.Fprintf(&b, "\nTotal: ₹%s\n", c.Total().StringFixed(2))
	return b.String()
}

// Products renders the menu grid as one block per product.
func Products(products []catalog.Product) string {
	if len(products) == 0 {
		return NoMoodMatchMessage + "\n"
	}

	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "%s  [%s]\n  %s\n  ₹%s\n",
			p.Name, p.ID, p.Description, p.Price.StringFixed(2))
	}
	return b.String()
}

// MoodTitle renders the heading above mood recommendations. The mood is
// shown capitalized regardless of how the user typed it.
func MoodTitle(mood string) string {
	return fmt.Sprintf("Recommendations for a %q mood:", capitalize(mood))
}

// Orders renders order history, newest first as delivered by the backend,
// with the item snapshot nested under each order header.
func Orders(orders []order.Order) string {
	if len(orders) == 0 {
		return NoOrdersMessage + "\n"
	}

	var b strings.Builder
	for i, o := range orders {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
		fmt.Fprintf(&b, "Date: %s\n", o.CreatedAt.Format("02/01/2006"))
		fmt.Fprintf(&b, "Total: ₹%s\n", o.TotalPrice.StringFixed(2))
		fmt.Fprintf(&b, "Status: %s [%s]\n", o.Status, o.Status.StyleTag())
		for _, item := range o.OrderItems {
			fmt.Fprintf(&b, "  %s (x%d)\n", item.Name, item.Quantity)
		}
	}
	return b.String()
}

// Navbar renders the session greeting and the cart badge. itemCount is the
// sum of line quantities, not the number of lines.
func Navbar(session *identity.Session, itemCount int) string {
	greeting := "Login | Register"
	if session != nil && session.Token != "" {
		greeting = "Welcome, " + session.Name
	}
	return fmt.Sprintf("%s | Cart (%d)\n", greeting, itemCount)
}

// Notification renders the transient add-to-cart confirmation line.
func Notification(productName string) string {
	return productName + " added to cart!\n"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
