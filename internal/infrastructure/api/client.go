package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brewleaf/client/internal/domain/cart"
	"github.com/brewleaf/client/internal/domain/catalog"
	"github.com/brewleaf/client/internal/domain/identity"
	"github.com/brewleaf/client/internal/domain/order"
)

// maxResponseSize is the maximum allowed response size from the backend (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client errors
var (
	ErrUnavailable     = errors.New("brewapi: backend unavailable")
	ErrInvalidResponse = errors.New("brewapi: invalid response from backend")
)

// Client talks to the Brew Leaf backend REST API. Authenticated calls carry
// the session's bearer token; every request gets an X-Request-ID header.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend API client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}, nil
}

// ---------------------------------------------------------------------------
// Cart Operations
// ---------------------------------------------------------------------------

// GetCart fetches the authenticated user's cart
func (c *Client) GetCart(ctx context.Context, token string) (cart.Cart, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/cart", token, nil)
	if err != nil {
		return cart.Cart{}, err
	}
	return decodeCart(body)
}

// AddCartItem adds a product to the authenticated user's cart and returns
// the updated cart
func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int) (cart.Cart, error) {
	req := addCartItemRequest{ProductID: productID, Quantity: quantity}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/cart", token, req)
	if err != nil {
		return cart.Cart{}, err
	}
	return decodeCart(body)
}

// RemoveCartItem removes a product from the authenticated user's cart and
// returns the updated cart
func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) (cart.Cart, error) {
	path := "/api/cart/" + url.PathEscape(productID)
	body, err := c.doRequest(ctx, http.MethodDelete, path, token, nil)
	if err != nil {
		return cart.Cart{}, err
	}
	return decodeCart(body)
}

// ClearCart empties the authenticated user's cart and returns the (empty)
// updated cart
func (c *Client) ClearCart(ctx context.Context, token string) (cart.Cart, error) {
	body, err := c.doRequest(ctx, http.MethodDelete, "/api/cart", token, nil)
	if err != nil {
		return cart.Cart{}, err
	}
	return decodeCart(body)
}

// ---------------------------------------------------------------------------
// Catalog Operations
// ---------------------------------------------------------------------------

// Products fetches the full product catalog
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/products", "", nil)
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return products, nil
}

// ProductsByMood fetches products recommended for the given mood
func (c *Client) ProductsByMood(ctx context.Context, mood string) ([]catalog.Product, error) {
	path := "/api/products/mood/" + url.PathEscape(mood)
	body, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return products, nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// MyOrders fetches the authenticated user's order history
func (c *Client) MyOrders(ctx context.Context, token string) ([]order.Order, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/orders/myorders", token, nil)
	if err != nil {
		return nil, err
	}

	var orders []order.Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return orders, nil
}

// CreateOrder places a new order. For card payments the response carries the
// payment intent client secret to confirm.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*CreateOrderResponse, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/orders", token, req)
	if err != nil {
		return nil, err
	}

	var resp CreateOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.CreatedOrder.ID == "" {
		return nil, fmt.Errorf("%w: order creation reply missing order", ErrInvalidResponse)
	}
	return &resp, nil
}

// FailOrder tells the backend that payment for the given order failed
func (c *Client) FailOrder(ctx context.Context, token, orderID string) error {
	path := "/api/orders/" + url.PathEscape(orderID) + "/fail"
	_, err := c.doRequest(ctx, http.MethodPut, path, token, nil)
	return err
}

// ---------------------------------------------------------------------------
// Identity Operations
// ---------------------------------------------------------------------------

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	req := loginRequest{Email: email, Password: password}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/users/login", "", req)
	if err != nil {
		return nil, err
	}
	return decodeSession(body)
}

// Register creates an account and returns the new session
func (c *Client) Register(ctx context.Context, name, email, password string) (*identity.Session, error) {
	req := registerRequest{Name: name, Email: email, Password: password}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/users/register", "", req)
	if err != nil {
		return nil, err
	}
	return decodeSession(body)
}

// ---------------------------------------------------------------------------
// Payment Configuration
// ---------------------------------------------------------------------------

// StripePublishableKey fetches the Stripe publishable key from the backend
func (c *Client) StripePublishableKey(ctx context.Context) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/config/stripe", "", nil)
	if err != nil {
		return "", err
	}

	var resp stripeConfigResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.PublishableKey == "" {
		return "", fmt.Errorf("%w: missing publishable key", ErrInvalidResponse)
	}
	return resp.PublishableKey, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs an HTTP request against the backend. A non-empty token
// is sent as a bearer Authorization header. Responses with status >= 400 are
// turned into a RequestError carrying the backend's message.
func (c *Client) doRequest(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("brewapi: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("brewapi: failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("Calling backend",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("brewapi: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var msg messageResponse
		_ = json.Unmarshal(body, &msg)
		c.logger.Debug("Backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg.Message))
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	return body, nil
}

// decodeCart unmarshals the backend's cart representation (a bare array of
// line items) into a Cart
func decodeCart(body []byte) (cart.Cart, error) {
	var items []cart.LineItem
	if err := json.Unmarshal(body, &items); err != nil {
		return cart.Cart{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return cart.Cart{Items: items}, nil
}

// decodeSession unmarshals a login/registration reply
func decodeSession(body []byte) (*identity.Session, error) {
	var session identity.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("%w: reply missing session token", ErrInvalidResponse)
	}
	return &session, nil
}
