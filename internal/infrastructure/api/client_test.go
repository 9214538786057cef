package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brewleaf/client/internal/domain/cart"
	"github.com/brewleaf/client/internal/domain/order"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{name: "valid config", config: NewConfig("https://example.com/"), wantErr: nil},
		{name: "missing base URL", config: &Config{}, wantErr: ErrConfigMissingBaseURL},
		{name: "relative base URL", config: NewConfig("example.com/api"), wantErr: ErrConfigInvalidBaseURL},
		{name: "unsupported scheme", config: NewConfig("ftp://example.com"), wantErr: ErrConfigInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "https://example.com", tt.config.BaseURL)
			assert.True(t, tt.config.Timeout > 0)
		})
	}
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(NewConfig(server.URL), zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestClient_GetCart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		_, _ = w.Write([]byte(`[{"product":"p1","name":"Espresso","price":150,"quantity":2}]`))
	}))

	got, err := client.GetCart(context.Background(), "tok123")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "300.00", got.Total().StringFixed(2))
}

func TestClient_AddCartItem(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req addCartItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "p1", req.ProductID)
		assert.Equal(t, 1, req.Quantity)

		_, _ = w.Write([]byte(`[{"product":"p1","name":"Espresso","price":150,"quantity":1}]`))
	}))

	got, err := client.AddCartItem(context.Background(), "tok123", "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ItemCount())
}

func TestClient_RemoveCartItem(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/cart/p1", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))

	got, err := client.RemoveCartItem(context.Background(), "tok123", "p1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestClient_ServerErrorMessageSurfaced(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not authorized, token failed"}`))
	}))

	_, err := client.GetCart(context.Background(), "bad-token")
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Equal(t, "Not authorized, token failed", reqErr.Message)
	assert.Equal(t, "Not authorized, token failed", err.Error())
}

func TestClient_Products(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"_id":"p1","name":"Espresso","description":"Strong","imageUrl":"u","price":150,"moodTags":["tired"]},
			{"_id":"p2","name":"Latte","description":"Smooth","imageUrl":"u","price":180}
		]`))
	}))

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Espresso", products[0].Name)
	assert.Equal(t, []string{"tired"}, products[0].MoodTags)
}

func TestClient_ProductsByMood(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/mood/happy", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))

	products, err := client.ProductsByMood(context.Background(), "happy")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestClient_MyOrders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/myorders", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{
			"_id":"o1","createdAt":"2026-08-01T10:00:00Z","totalPrice":300,
			"status":"paid","orderItems":[{"product":"p1","name":"Espresso","price":150,"quantity":2}]
		}]`))
	}))

	orders, err := client.MyOrders(context.Background(), "tok123")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusPaid, orders[0].Status)
	assert.Len(t, orders[0].OrderItems, 1)
}

func TestClient_CreateOrder(t *testing.T) {
	req := CreateOrderRequest{
		OrderItems: []cart.LineItem{
			{ProductID: "p1", Name: "Espresso", Price: decimal.NewFromInt(150), Quantity: 2},
		},
		ShippingAddress: "12 MG Road",
		PaymentMethod:   order.PaymentCard,
		TotalPrice:      decimal.NewFromInt(300),
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "orderItems")
		assert.Contains(t, body, "shippingAddress")
		assert.Contains(t, body, "paymentMethod")
		assert.Contains(t, body, "totalPrice")

		_, _ = w.Write([]byte(`{
			"createdOrder":{"_id":"o1","totalPrice":300,"status":"pending"},
			"clientSecret":"pi_123_secret_abc"
		}`))
	}))

	resp, err := client.CreateOrder(context.Background(), "tok123", req)
	require.NoError(t, err)
	assert.Equal(t, "o1", resp.CreatedOrder.ID)
	assert.Equal(t, "pi_123_secret_abc", resp.ClientSecret)
}

func TestClient_CreateOrder_MissingOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := client.CreateOrder(context.Background(), "tok123", CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_FailOrder(t *testing.T) {
	var called bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/o1/fail", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"message":"Order marked as failed"}`))
	}))

	require.NoError(t, client.FailOrder(context.Background(), "tok123", "o1"))
	assert.True(t, called)
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "asha@example.com", req.Email)

		_, _ = w.Write([]byte(`{"_id":"u1","name":"Asha","email":"asha@example.com","token":"tok123"}`))
	}))

	session, err := client.Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Asha", session.Name)
	assert.Equal(t, "tok123", session.Token)
}

func TestClient_Login_MissingToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Asha"}`))
	}))

	_, err := client.Login(context.Background(), "asha@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Register(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/register", r.URL.Path)

		var req registerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Asha", req.Name)

		_, _ = w.Write([]byte(`{"_id":"u1","name":"Asha","email":"asha@example.com","token":"tok123"}`))
	}))

	session, err := client.Register(context.Background(), "Asha", "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.ID)
}

func TestClient_StripePublishableKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/config/stripe", r.URL.Path)
		_, _ = w.Write([]byte(`{"publishableKey":"pk_test_123"}`))
	}))

	key, err := client.StripePublishableKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pk_test_123", key)
}

func TestClient_BackendUnavailable(t *testing.T) {
	client, err := NewClient(NewConfig("http://127.0.0.1:1"), zap.NewNop())
	require.NoError(t, err)

	_, err = client.Products(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
