package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer     = "storefront"
	kindAccess = "access"
)

type claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

type tokenMeta struct {
	UserID    string
	ExpiresAt time.Time
}

// tokenManager signs access tokens and keeps their jti in the token store so
// they can be revoked before expiry.
type tokenManager struct {
	repo   tokenrepo.Repository
	secret []byte
	now    func() time.Time
}

func newTokenManager(repo tokenrepo.Repository, secret string) *tokenManager {
	return &tokenManager{
		repo:   repo,
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (m *tokenManager) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	now := m.now()
	expiresAt := now.Add(ttl)
	for i := 0; i < 5; i++ {
		jti := uuid.NewString()
		err := m.repo.Create(ctx, tokenrepo.Token{
			JTI:       jti,
			UserID:    userID,
			Kind:      kindAccess,
			ExpiresAt: expiresAt,
		})
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return "", err
		}
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			Kind: kindAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        jti,
				Subject:   userID,
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(expiresAt),
				IssuedAt:  jwt.NewNumericDate(now),
				NotBefore: jwt.NewNumericDate(now),
			},
		})
		signed, err := tok.SignedString(m.secret)
		if err != nil {
			return "", fmt.Errorf("sign token: %w", err)
		}
		return signed, nil
	}
	return "", errors.New("token collision")
}

// Validate returns ErrInvalidToken for tokens that are malformed, expired or
// revoked. Token store failures are returned as is.
func (m *tokenManager) Validate(ctx context.Context, token string) (tokenMeta, error) {
	c, err := m.parse(token, true)
	if err != nil {
		return tokenMeta{}, ErrInvalidToken
	}
	stored, err := m.repo.Get(ctx, c.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return tokenMeta{}, ErrInvalidToken
	}
	if err != nil {
		return tokenMeta{}, fmt.Errorf("load token: %w", err)
	}
	if stored.Kind != kindAccess || stored.UserID != c.Subject {
		return tokenMeta{}, ErrInvalidToken
	}
	if m.now().After(stored.ExpiresAt) {
		_ = m.repo.Delete(ctx, c.ID)
		return tokenMeta{}, ErrInvalidToken
	}
	return tokenMeta{UserID: stored.UserID, ExpiresAt: stored.ExpiresAt}, nil
}

// Revoke deletes the token's jti. The signature must verify; expiry is ignored.
func (m *tokenManager) Revoke(ctx context.Context, token string) error {
	c, err := m.parse(token, false)
	if err != nil {
		return ErrInvalidToken
	}
	return m.repo.Delete(ctx, c.ID)
}

func (m *tokenManager) parse(token string, validateClaims bool) (*claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || c.Kind != kindAccess || c.ID == "" || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
