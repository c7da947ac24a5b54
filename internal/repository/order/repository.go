package order

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/storefront/orderstatus"
)

// Repository stores placed orders. Items, customer info and the applied
// coupon are kept as JSON documents alongside the order row.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the user's orders newest first. An empty status
	// returns every status.
	ListByUser(ctx context.Context, userID string, status orderstatus.Status) ([]domain.Order, error)
	ListAll(ctx context.Context, status orderstatus.Status) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status orderstatus.Status) (*domain.Order, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
