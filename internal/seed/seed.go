// Package seed loads the sample catalog and demo accounts into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/sample"
	authsvc "storefront/internal/service/auth"
)

type catalogStore interface {
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type accounts interface {
	EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, error)
}

type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type orderStore interface {
	CountByUser(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

// Options selects which accounts to create. Empty passwords skip that account.
type Options struct {
	AdminEmail    string
	AdminPassword string
	DemoEmail     string
	DemoPassword  string
}

// Report summarises what Apply changed.
type Report struct {
	Products int
	Admin    string
	DemoUser string
	Orders   int
}

type Seeder struct {
	catalog  catalogStore
	accounts accounts
	users    userFinder
	orders   orderStore
	logger   *log.Logger
}

func New(catalog catalogStore, accts accounts, users userFinder, orders orderStore, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Seeder{catalog: catalog, accounts: accts, users: users, orders: orders, logger: logger}
}

// Apply is safe to run repeatedly: the catalog is only loaded into an empty
// products table and demo orders only go to a user without orders.
func (s *Seeder) Apply(ctx context.Context, opts Options) (Report, error) {
	var rep Report

	n, err := s.seedCatalog(ctx)
	if err != nil {
		return rep, fmt.Errorf("seed catalog: %w", err)
	}
	rep.Products = n

	if opts.AdminPassword != "" {
		admin, err := s.accounts.EnsureAdmin(ctx, opts.AdminEmail, opts.AdminPassword)
		if err != nil {
			return rep, fmt.Errorf("ensure admin: %w", err)
		}
		rep.Admin = admin.ID
	}

	if opts.DemoPassword != "" {
		demo, err := s.demoUser(ctx, opts.DemoEmail, opts.DemoPassword)
		if err != nil {
			return rep, fmt.Errorf("demo user: %w", err)
		}
		rep.DemoUser = demo.ID
		if rep.Orders, err = s.seedOrders(ctx, demo.ID); err != nil {
			return rep, fmt.Errorf("demo orders: %w", err)
		}
	}
	return rep, nil
}

func (s *Seeder) seedCatalog(ctx context.Context) (int, error) {
	count, err := s.catalog.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Printf("seed: catalog has %d products, skipping", count)
		return 0, nil
	}
	products := sample.Products()
	for _, p := range products {
		if _, err := s.catalog.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	s.logger.Printf("seed: loaded products count=%d", len(products))
	return len(products), nil
}

func (s *Seeder) demoUser(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.accounts.Register(ctx, authsvc.RegisterInput{Email: email, Password: password, DisplayName: "Cliente Demo"})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return s.users.GetByEmail(ctx, email)
	}
	return u, err
}

func (s *Seeder) seedOrders(ctx context.Context, userID string) (int, error) {
	existing, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		s.logger.Printf("seed: user_id=%s has %d orders, skipping", userID, existing)
		return 0, nil
	}
	orders := sample.OrdersFor(userID)
	for _, o := range orders {
		if _, err := s.orders.Create(ctx, o); err != nil {
			return 0, err
		}
	}
	s.logger.Printf("seed: created orders user_id=%s count=%d", userID, len(orders))
	return len(orders), nil
}
