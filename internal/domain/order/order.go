package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewleaf/client/internal/domain/cart"
)

// Status represents the status of an order. Transitions are server-driven;
// the client only displays whatever the backend reports, so unknown values
// pass through unchanged.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// IsValid checks if the status is one the client knows about.
func (s Status) IsValid() bool {
	switch Status(strings.ToLower(string(s))) {
	case StatusPending, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// String returns the string representation of Status.
func (s Status) String() string {
	return string(s)
}

// StyleTag returns the status-derived display class, e.g. "status-paid".
func (s Status) StyleTag() string {
	return "status-" + strings.ToLower(string(s))
}

// PaymentMethod selects how an order is settled at checkout.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentCard           PaymentMethod = "Card"
)

// IsValid checks if the payment method is supported.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCashOnDelivery || m == PaymentCard
}

// Order is a past or in-flight order as returned by the backend. Items are
// snapshots of the cart lines at checkout time, not live product references.
type Order struct {
	ID         string          `json:"_id"`
	CreatedAt  time.Time       `json:"createdAt"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     Status          `json:"status"`
	OrderItems []cart.LineItem `json:"orderItems"`
}
