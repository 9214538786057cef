package order

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/brewleaf/client/internal/domain/cart"
	"github.com/brewleaf/client/internal/domain/order"
	"github.com/brewleaf/client/internal/domain/shared"
	"github.com/brewleaf/client/internal/infrastructure/api"
	"github.com/brewleaf/client/internal/infrastructure/payment"
)

// ErrUnsupportedPaymentMethod indicates a payment method the flow cannot settle
var ErrUnsupportedPaymentMethod = shared.NewDomainError("UNSUPPORTED_PAYMENT_METHOD", "Unsupported payment method")

// CheckoutAPI covers the backend calls the place-order flow needs
type CheckoutAPI interface {
	GetCart(ctx context.Context, token string) (cart.Cart, error)
	CreateOrder(ctx context.Context, token string, req api.CreateOrderRequest) (*api.CreateOrderResponse, error)
	FailOrder(ctx context.Context, token, orderID string) error
	StripePublishableKey(ctx context.Context) (string, error)
}

// PaymentConfirmer drives the payment processor's SDK
type PaymentConfirmer interface {
	Initialize(key string) error
	ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethodID string) (*payment.ConfirmResult, error)
}

// Receipt is the outcome of a successful place-order flow. For card
// payments the final order status is settled by the backend's webhook, not
// by this client; Message reflects that.
type Receipt struct {
	Order   order.Order
	Message string
}

// CheckoutService composes the cart, order creation and payment
// confirmation into a single sequential place-order flow. Any failed step
// aborts the remaining ones; no partial-state cleanup is attempted.
type CheckoutService struct {
	sessions Sessions
	api      CheckoutAPI
	payments PaymentConfirmer
	logger   *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(sessions Sessions, checkoutAPI CheckoutAPI, payments PaymentConfirmer, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		api:      checkoutAPI,
		payments: payments,
		logger:   logger,
	}
}

// PlaceOrder runs the checkout sequence: session, delivery location,
// non-empty server cart, order creation, then settlement by payment method.
// paymentMethodID selects the card to charge and is only used for card
// payments.
func (s *CheckoutService) PlaceOrder(ctx context.Context, location string, method order.PaymentMethod, paymentMethodID string) (*Receipt, error) {
	session, err := s.sessions.Get()
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token == "" {
		return nil, shared.ErrLoginRequired
	}

	if strings.TrimSpace(location) == "" {
		return nil, shared.ErrLocationRequired
	}

	if !method.IsValid() {
		return nil, ErrUnsupportedPaymentMethod
	}

	// Card payments need the processor booted before the order exists, so a
	// misconfigured payment setup never leaves an unpayable order behind.
	if method == order.PaymentCard {
		key, err := s.api.StripePublishableKey(ctx)
		if err != nil {
			s.logger.Error("Failed to initialize payment processor", zap.Error(err))
			return nil, err
		}
		if err := s.payments.Initialize(key); err != nil {
			return nil, err
		}
	}

	serverCart, err := s.api.GetCart(ctx, session.Token)
	if err != nil {
		return nil, err
	}
	if serverCart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	total := serverCart.Total()
	resp, err := s.api.CreateOrder(ctx, session.Token, api.CreateOrderRequest{
		OrderItems:      serverCart.Items,
		ShippingAddress: location,
		PaymentMethod:   method,
		TotalPrice:      total,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", resp.CreatedOrder.ID),
		zap.String("payment_method", string(method)),
		zap.String("total", total.StringFixed(2)))

	if method == order.PaymentCashOnDelivery {
		return &Receipt{
			Order:   resp.CreatedOrder,
			Message: "Order placed successfully!",
		}, nil
	}

	result, err := s.payments.ConfirmCardPayment(ctx, resp.ClientSecret, paymentMethodID)
	if err != nil {
		// Best-effort notification; the confirmation error is what the user
		// needs to see, so a failed notification is only logged.
		if failErr := s.api.FailOrder(ctx, session.Token, resp.CreatedOrder.ID); failErr != nil {
			s.logger.Error("Failed to mark order as failed",
				zap.String("order_id", resp.CreatedOrder.ID),
				zap.Error(failErr))
		}
		return nil, err
	}

	if !result.Succeeded {
		s.logger.Warn("Payment confirmation did not succeed",
			zap.String("order_id", resp.CreatedOrder.ID),
			zap.String("status", result.Status))
	}

	// The backend's webhook finalizes the order status; the client does not
	// poll or re-confirm.
	return &Receipt{
		Order:   resp.CreatedOrder,
		Message: "Payment successful! Your order is being confirmed.",
	}, nil
}
