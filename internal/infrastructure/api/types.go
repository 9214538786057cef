package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brewleaf/client/internal/domain/cart"
	"github.com/brewleaf/client/internal/domain/order"
)

// RequestError is a server-rejected request. Message carries whatever the
// backend supplied so it can be surfaced to the user verbatim.
type RequestError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("brewapi: request failed with HTTP %d", e.StatusCode)
}

// messageResponse is the backend's error (and generic status) envelope
type messageResponse struct {
	Message string `json:"message"`
}

// addCartItemRequest is the body for POST /api/cart
type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// loginRequest is the body for POST /api/users/login
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the body for POST /api/users/register
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateOrderRequest is the body for POST /api/orders
type CreateOrderRequest struct {
	OrderItems      []cart.LineItem     `json:"orderItems"`
	ShippingAddress string              `json:"shippingAddress"`
	PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"`
}

// CreateOrderResponse is the backend's reply to order creation. ClientSecret
// is only set for card payments and authorizes confirming the payment
// intent client-side.
type CreateOrderResponse struct {
	CreatedOrder order.Order `json:"createdOrder"`
	ClientSecret string      `json:"clientSecret,omitempty"`
}

// stripeConfigResponse is the reply to GET /api/config/stripe
type stripeConfigResponse struct {
	PublishableKey string `json:"publishableKey"`
}
