// Package cart unifies the two cart homes behind one API: the backend cart
// resource when a session is active, the local guest cart otherwise.
package cart

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/brewleaf/client/internal/domain/cart"
	"github.com/brewleaf/client/internal/domain/catalog"
	"github.com/brewleaf/client/internal/domain/identity"
)

// RemoteCart performs authenticated calls against the backend cart resource
type RemoteCart interface {
	GetCart(ctx context.Context, token string) (cart.Cart, error)
	AddCartItem(ctx context.Context, token, productID string, quantity int) (cart.Cart, error)
	RemoveCartItem(ctx context.Context, token, productID string) (cart.Cart, error)
	ClearCart(ctx context.Context, token string) (cart.Cart, error)
}

// GuestCart persists the local cart used when no session exists
type GuestCart interface {
	Get() (cart.Cart, error)
	Set(c cart.Cart) error
	Clear() error
}

// Sessions reads the persisted session record
type Sessions interface {
	Get() (*identity.Session, error)
}

// Service is the cart controller. Every operation returns the up-to-date
// cart so callers can repaint the list and the item-count badge.
type Service struct {
	sessions Sessions
	remote   RemoteCart
	guest    GuestCart
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new cart service
func NewService(sessions Sessions, remote RemoteCart, guest GuestCart, logger *zap.Logger) *Service {
	return &Service{
		sessions: sessions,
		remote:   remote,
		guest:    guest,
		logger:   logger,
		now:      time.Now,
	}
}

// cartHome is where the cart currently lives. Exactly one home is active at
// a time; the choice is made once per operation instead of re-checking the
// session at every call site.
type cartHome interface {
	load(ctx context.Context) (cart.Cart, error)
	add(ctx context.Context, item cart.LineItem) (cart.Cart, error)
	remove(ctx context.Context, productID string) (cart.Cart, error)
	clear(ctx context.Context) (cart.Cart, error)
}

// home resolves the active cart home. An expired session counts as absent.
func (s *Service) home() (cartHome, error) {
	session, err := s.sessions.Get()
	if err != nil {
		return nil, err
	}
	if session.Active(s.now()) {
		return &remoteHome{client: s.remote, token: session.Token}, nil
	}
	return &guestHome{store: s.guest}, nil
}

// Load returns the current cart contents
func (s *Service) Load(ctx context.Context) (cart.Cart, error) {
	home, err := s.home()
	if err != nil {
		return cart.Cart{}, err
	}

	c, err := home.load(ctx)
	if err != nil {
		s.logger.Error("Error fetching cart", zap.Error(err))
		return cart.Cart{}, err
	}
	return c, nil
}

// Add puts one unit of the product into the cart, merging with an existing
// line for the same product
func (s *Service) Add(ctx context.Context, product catalog.Product) (cart.Cart, error) {
	home, err := s.home()
	if err != nil {
		return cart.Cart{}, err
	}

	c, err := home.add(ctx, cart.LineFromProduct(product))
	if err != nil {
		s.logger.Error("Error adding to cart",
			zap.String("product_id", product.ID),
			zap.Error(err))
		return cart.Cart{}, err
	}
	return c, nil
}

// Remove drops the line for the given product. Removing a product not in
// the cart leaves the cart unchanged.
func (s *Service) Remove(ctx context.Context, productID string) (cart.Cart, error) {
	home, err := s.home()
	if err != nil {
		return cart.Cart{}, err
	}

	c, err := home.remove(ctx, productID)
	if err != nil {
		s.logger.Error("Error removing item",
			zap.String("product_id", productID),
			zap.Error(err))
		return cart.Cart{}, err
	}
	return c, nil
}

// Clear empties the cart after confirmation. When confirm declines, the
// cart is returned unchanged and cleared is false.
func (s *Service) Clear(ctx context.Context, confirm func() bool) (c cart.Cart, cleared bool, err error) {
	home, err := s.home()
	if err != nil {
		return cart.Cart{}, false, err
	}

	if confirm == nil || !confirm() {
		c, err := home.load(ctx)
		return c, false, err
	}

	c, err = home.clear(ctx)
	if err != nil {
		s.logger.Error("Error clearing cart", zap.Error(err))
		return cart.Cart{}, false, err
	}
	return c, true, nil
}

// ---------------------------------------------------------------------------
// Cart homes
// ---------------------------------------------------------------------------

type remoteHome struct {
	client RemoteCart
	token  string
}

func (h *remoteHome) load(ctx context.Context) (cart.Cart, error) {
	return h.client.GetCart(ctx, h.token)
}

func (h *remoteHome) add(ctx context.Context, item cart.LineItem) (cart.Cart, error) {
	return h.client.AddCartItem(ctx, h.token, item.ProductID, item.Quantity)
}

func (h *remoteHome) remove(ctx context.Context, productID string) (cart.Cart, error) {
	return h.client.RemoveCartItem(ctx, h.token, productID)
}

func (h *remoteHome) clear(ctx context.Context) (cart.Cart, error) {
	return h.client.ClearCart(ctx, h.token)
}

type guestHome struct {
	store GuestCart
}

func (h *guestHome) load(context.Context) (cart.Cart, error) {
	return h.store.Get()
}

func (h *guestHome) add(_ context.Context, item cart.LineItem) (cart.Cart, error) {
	c, err := h.store.Get()
	if err != nil {
		return cart.Cart{}, err
	}
	if err := c.Add(item); err != nil {
		return cart.Cart{}, err
	}
	if err := h.store.Set(c); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

func (h *guestHome) remove(_ context.Context, productID string) (cart.Cart, error) {
	c, err := h.store.Get()
	if err != nil {
		return cart.Cart{}, err
	}
	c.Remove(productID)
	if err := h.store.Set(c); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}

func (h *guestHome) clear(context.Context) (cart.Cart, error) {
	if err := h.store.Clear(); err != nil {
		return cart.Cart{}, err
	}
	return cart.New(), nil
}
