package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/mail"
	"strings"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

const passwordMin = 6

type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetRole(ctx context.Context, id, role string) error
}

// Service handles registration, sign-in and access token checks.
type Service struct {
	repo      userRepo
	tokens    *tokenManager
	accessTTL time.Duration
	logger    *log.Logger
}

// New creates a Service. A zero accessTTL defaults to 48 hours.
func New(repo userRepo, tokens tokenrepo.Repository, secret string, accessTTL time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if accessTTL <= 0 {
		accessTTL = 48 * time.Hour
	}
	return &Service{
		repo:      repo,
		tokens:    newTokenManager(tokens, secret),
		accessTTL: accessTTL,
		logger:    logger,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleCustomer)
}

func (s *Service) create(ctx context.Context, in RegisterInput, role string) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	if len(strings.TrimSpace(in.Password)) < passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("auth svc: registered user_id=%s role=%s", u.ID, u.Role)
	return u, nil
}

// SignIn validates credentials and returns the user with a fresh access token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	s.logger.Printf("auth svc: sign in user_id=%s", u.ID)
	return u, access, nil
}

// SignOut revokes the token. Revoking an unknown or expired token is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	err := s.tokens.Revoke(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// CurrentUser returns the user bound to a valid access token.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	meta, err := s.tokens.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// EnsureAdmin creates the administrator account, or promotes an existing
// account with that email.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return existing, nil
		}
		if err := s.repo.SetRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
			return nil, err
		}
		existing.Role = domain.RoleAdmin
		s.logger.Printf("auth svc: promoted user_id=%s to admin", existing.ID)
		return existing, nil
	case errors.Is(err, domain.ErrNotFound):
		return s.create(ctx, RegisterInput{Email: email, Password: password, DisplayName: "Administrador"}, domain.RoleAdmin)
	default:
		return nil, err
	}
}

// PurgeExpired drops access tokens past their expiry from the token store.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.tokens.repo.DeleteExpired(ctx, s.tokens.now())
	if err != nil {
		return 0, err
	}
	s.logger.Printf("auth svc: purged expired tokens count=%d", n)
	return n, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}
