package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists catalog products.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// Upsert inserts or replaces by id. Used by seeding and bulk import.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
