package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"
)

// Adapter errors
var (
	ErrNotInitialized      = errors.New("stripe: adapter not initialized with a publishable key")
	ErrInvalidKey          = errors.New("stripe: publishable key must start with pk_")
	ErrInvalidClientSecret = errors.New("stripe: invalid payment intent client secret")
)

// ConfirmResult is the outcome of a payment confirmation attempt
type ConfirmResult struct {
	IntentID  string
	Status    string
	Succeeded bool
}

// StripeAdapter confirms card payments against Stripe using the client
// secret issued at order creation. The publishable key comes from the
// backend's config endpoint, the same way the browser client boots the
// Stripe widget.
type StripeAdapter struct {
	logger *zap.Logger

	mu  sync.Mutex
	key string
}

// NewStripeAdapter creates a new Stripe adapter
func NewStripeAdapter(logger *zap.Logger) *StripeAdapter {
	return &StripeAdapter{logger: logger}
}

// Initialize sets the publishable key used for confirmation calls
func (a *StripeAdapter) Initialize(key string) error {
	if !strings.HasPrefix(key, "pk_") {
		return ErrInvalidKey
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.key = key
	stripe.Key = key

	a.logger.Debug("Stripe adapter initialized",
		zap.Bool("test_mode", strings.HasPrefix(key, "pk_test")))
	return nil
}

// ConfirmCardPayment confirms the payment intent identified by clientSecret
// with the given payment method. The SDK's error message is returned as-is
// so it can be shown to the user.
func (a *StripeAdapter) ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethodID string) (*ConfirmResult, error) {
	a.mu.Lock()
	initialized := a.key != ""
	a.mu.Unlock()
	if !initialized {
		return nil, ErrNotInitialized
	}

	intentID, err := intentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Confirming card payment",
		zap.String("intent_id", intentID),
		zap.String("payment_method", paymentMethodID))

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.AddExtra("client_secret", clientSecret)
	params.Context = ctx

	intent, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		a.logger.Error("Card payment confirmation failed",
			zap.String("intent_id", intentID),
			zap.Error(err))

		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, fmt.Errorf("stripe: %s", stripeErr.Msg)
		}
		return nil, fmt.Errorf("stripe: failed to confirm payment: %w", err)
	}

	result := &ConfirmResult{
		IntentID:  intent.ID,
		Status:    string(intent.Status),
		Succeeded: intent.Status == stripe.PaymentIntentStatusSucceeded,
	}

	a.logger.Info("Card payment confirmed",
		zap.String("intent_id", result.IntentID),
		zap.String("status", result.Status))
	return result, nil
}

// intentIDFromClientSecret extracts the payment intent ID from a client
// secret of the form "pi_xxx_secret_yyy"
func intentIDFromClientSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || !strings.HasPrefix(id, "pi_") {
		return "", ErrInvalidClientSecret
	}
	return id, nil
}
