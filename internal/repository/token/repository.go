package token

import (
	"context"
	"time"
)

// Token records an issued access token by its jti. A token is valid only
// while its row exists and has not expired.
type Token struct {
	JTI       string
	UserID    string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, jti string) (*Token, error)
	Delete(ctx context.Context, jti string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
