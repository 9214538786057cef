// Package order loads order history and drives the place-order flow.
package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/brewleaf/client/internal/domain/identity"
	"github.com/brewleaf/client/internal/domain/order"
	"github.com/brewleaf/client/internal/domain/shared"
)

// HistoryAPI fetches the user's past orders
type HistoryAPI interface {
	MyOrders(ctx context.Context, token string) ([]order.Order, error)
}

// Sessions reads the persisted session record
type Sessions interface {
	Get() (*identity.Session, error)
}

// HistoryService loads a user's order history
type HistoryService struct {
	sessions Sessions
	api      HistoryAPI
	logger   *zap.Logger
	now      func() time.Time
}

// NewHistoryService creates a new order history service
func NewHistoryService(sessions Sessions, api HistoryAPI, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		sessions: sessions,
		api:      api,
		logger:   logger,
		now:      time.Now,
	}
}

// MyOrders returns the authenticated user's past orders. Without an active
// session the caller should send the user to the login page.
func (s *HistoryService) MyOrders(ctx context.Context) ([]order.Order, error) {
	session, err := s.sessions.Get()
	if err != nil {
		return nil, err
	}
	if !session.Active(s.now()) {
		return nil, shared.ErrLoginRequired
	}

	orders, err := s.api.MyOrders(ctx, session.Token)
	if err != nil {
		s.logger.Error("Failed to load orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}
