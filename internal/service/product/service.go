package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/sample"
	"storefront/internal/storefront/catalog"

	"github.com/shopspring/decimal"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type Service struct {
	repo     productRepo
	fallback bool
	logger   *log.Logger
}

// New creates a Service. With fallback enabled, reads that fail or find an
// empty store are answered from the built-in sample catalog and flagged as
// degraded.
func New(repo productRepo, fallback bool, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, fallback: fallback, logger: logger}
}

// Listing is a product list plus whether it came from the sample catalog.
type Listing struct {
	Products []domain.Product
	Degraded bool
}

// Page is a filtered listing together with the facets used to build it.
type Page struct {
	Listing
	Categories []string
	Category   string
	Query      string
	Total      int
}

func (s *Service) List(ctx context.Context) (Listing, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		if !s.fallback {
			return Listing{}, err
		}
		s.logger.Printf("product svc: list failed, serving sample catalog error=%v", err)
		return Listing{Products: sample.Products(), Degraded: true}, nil
	}
	if len(products) == 0 && s.fallback {
		s.logger.Printf("product svc: store empty, serving sample catalog")
		return Listing{Products: sample.Products(), Degraded: true}, nil
	}
	return Listing{Products: products}, nil
}

// Browse filters the listing by category and search term.
func (s *Service) Browse(ctx context.Context, category, query string) (Page, error) {
	listing, err := s.List(ctx)
	if err != nil {
		return Page{}, err
	}
	idx := catalog.NewIndex(listing.Products)
	idx.SetCategory(category)
	idx.SetSearchTerm(query)

	return Page{
		Listing:    Listing{Products: idx.Filtered(), Degraded: listing.Degraded},
		Categories: idx.Categories(),
		Category:   idx.Category(),
		Query:      idx.SearchTerm(),
		Total:      len(listing.Products),
	}, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, bool, error) {
	listing, err := s.List(ctx)
	if err != nil {
		return nil, false, err
	}
	return catalog.Categories(listing.Products), listing.Degraded, nil
}

// Get returns the product and whether it came from the sample catalog.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return p, false, nil
	}
	if !s.fallback {
		return nil, false, err
	}
	if errors.Is(err, domain.ErrNotFound) {
		n, cerr := s.repo.Count(ctx)
		if cerr != nil || n > 0 {
			return nil, false, err
		}
	} else {
		s.logger.Printf("product svc: get id=%s failed, trying sample catalog error=%v", id, err)
	}
	if sp, ok := sample.Product(id); ok {
		return &sp, true, nil
	}
	return nil, false, err
}

// Input is the full set of editable product fields.
type Input struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
}

// Patch holds optional fields for a partial update.
type Patch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"imageUrl"`
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p := domain.Product{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Stock:       in.Stock,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("product svc: created id=%s", created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*domain.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *current
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
	}
	if patch.ImageURL != nil {
		next.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if err := Validate(next); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("product svc: updated id=%s", updated.ID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("product svc: deleted id=%s", id)
	return nil
}

// Validate checks the invariants every stored product must hold.
func Validate(p domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
