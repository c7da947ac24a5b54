package cart

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/storefront/cart"
)

// Stored is the persisted state of one session's cart.
type Stored struct {
	Lines  []cart.Line
	Coupon *domain.Coupon
}

// Repository keeps carts keyed by session ("user:<id>" or "guest:<uuid>").
type Repository interface {
	// Load returns an empty Stored when the session has no cart yet.
	Load(ctx context.Context, sessionKey string) (*Stored, error)
	Save(ctx context.Context, sessionKey string, s Stored) error
	Delete(ctx context.Context, sessionKey string) error
}
