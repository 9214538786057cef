// Package catalog loads product listings for display: the full menu or a
// mood-filtered selection.
package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/brewleaf/client/internal/domain/catalog"
	"github.com/brewleaf/client/internal/domain/shared"
)

// ErrMoodRequired indicates a mood lookup without a mood
var ErrMoodRequired = shared.NewDomainError("MOOD_REQUIRED", "A mood is required")

// API fetches product listings from the backend
type API interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	ProductsByMood(ctx context.Context, mood string) ([]catalog.Product, error)
}

// Service loads the catalog and mood recommendations
type Service struct {
	api    API
	logger *zap.Logger
}

// NewService creates a new catalog service
func NewService(api API, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Menu returns the full product catalog
func (s *Service) Menu(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.api.Products(ctx)
	if err != nil {
		s.logger.Error("Failed to load menu products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

// Mood returns products recommended for the given mood
func (s *Service) Mood(ctx context.Context, mood string) ([]catalog.Product, error) {
	mood = strings.TrimSpace(strings.ToLower(mood))
	if mood == "" {
		return nil, ErrMoodRequired
	}

	products, err := s.api.ProductsByMood(ctx, mood)
	if err != nil {
		s.logger.Error("Failed to get recommendations",
			zap.String("mood", mood),
			zap.Error(err))
		return nil, err
	}
	return products, nil
}

// Find resolves a product by ID from the full catalog. Used by the CLI to
// turn a product argument into the product record an add-to-cart needs.
func (s *Service) Find(ctx context.Context, productID string) (*catalog.Product, error) {
	products, err := s.Menu(ctx)
	if err != nil {
		return nil, err
	}
	p, found := catalog.FindByID(products, productID)
	if !found {
		return nil, shared.ErrNotFound
	}
	return p, nil
}
