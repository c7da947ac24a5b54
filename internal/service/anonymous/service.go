// Package anonymous issues signed guest tokens so shoppers can keep a cart
// before signing in.
package anonymous

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	tokens    *tokenManager
	accessTTL time.Duration
}

// New creates a Service. A zero ttl defaults to 30 days.
func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{
		tokens:    newTokenManager(secret),
		accessTTL: ttl,
	}
}

// Issue returns a new guest token and the guest id it carries.
func (s *Service) Issue(_ context.Context) (token, guestID string, err error) {
	guestID = randomID()
	token, err = s.tokens.Issue(guestID, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	return token, guestID, nil
}

// Lookup returns the guest id of a valid token.
func (s *Service) Lookup(_ context.Context, token string) (string, error) {
	meta, ok := s.tokens.Validate(token)
	if !ok {
		return "", ErrInvalidToken
	}
	return meta.GuestID, nil
}

func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}
