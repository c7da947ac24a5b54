package anonymous

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer    = "storefront"
	kindGuest = "guest"
)

type claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

type tokenMeta struct {
	GuestID   string
	ExpiresAt time.Time
}

// tokenManager signs stateless guest tokens. Nothing is stored server side.
type tokenManager struct {
	secret []byte
	now    func() time.Time
}

func newTokenManager(secret string) *tokenManager {
	return &tokenManager{secret: []byte(secret), now: time.Now}
}

func (m *tokenManager) Issue(guestID string, ttl time.Duration) (string, error) {
	now := m.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Kind: kindGuest,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   guestID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign guest token: %w", err)
	}
	return signed, nil
}

func (m *tokenManager) Validate(token string) (tokenMeta, bool) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid || c.Kind != kindGuest {
		return tokenMeta{}, false
	}
	if _, err := uuid.Parse(c.Subject); err != nil {
		return tokenMeta{}, false
	}
	return tokenMeta{GuestID: c.Subject, ExpiresAt: c.ExpiresAt.Time}, true
}

func randomID() string {
	return uuid.NewString()
}
