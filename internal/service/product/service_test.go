package product

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type stubRepo struct {
	products  []domain.Product
	listErr   error
	getErr    error
	countErr  error
	created   *domain.Product
	updated   *domain.Product
	deletedID string
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, p := range s.products {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = "new"
	}
	s.created = &p
	return &p, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.updated = &p
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return nil
}

func (s *stubRepo) Count(_ context.Context) (int, error) {
	return len(s.products), s.countErr
}

func stored() []domain.Product {
	return []domain.Product{
		{ID: "a", Name: "Polo Azul", Category: "Camisetas", Price: decimal.NewFromInt(20), Stock: 3},
		{ID: "b", Name: "Falda Corta", Description: "algodón azul", Category: "Faldas", Price: decimal.NewFromInt(30), Stock: 1},
	}
}

func TestListUsesStore(t *testing.T) {
	svc := New(&stubRepo{products: stored()}, true, nil)
	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if listing.Degraded || len(listing.Products) != 2 {
		t.Fatalf("unexpected listing %+v", listing)
	}
}

func TestListFallsBackWhenStoreFails(t *testing.T) {
	svc := New(&stubRepo{listErr: errors.New("db down")}, true, nil)
	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !listing.Degraded || len(listing.Products) != 8 {
		t.Fatalf("expected degraded sample catalog, got degraded=%t count=%d", listing.Degraded, len(listing.Products))
	}
}

func TestListFallsBackWhenStoreEmpty(t *testing.T) {
	svc := New(&stubRepo{}, true, nil)
	listing, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !listing.Degraded {
		t.Fatalf("expected degraded listing for empty store")
	}
}

func TestListWithoutFallbackSurfacesError(t *testing.T) {
	boom := errors.New("db down")
	svc := New(&stubRepo{listErr: boom}, false, nil)
	if _, err := svc.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}

	listing, err := New(&stubRepo{}, false, nil).List(context.Background())
	if err != nil || listing.Degraded || len(listing.Products) != 0 {
		t.Fatalf("expected empty non-degraded listing, got %+v err=%v", listing, err)
	}
}

func TestBrowseFilters(t *testing.T) {
	svc := New(&stubRepo{products: stored()}, true, nil)
	page, err := svc.Browse(context.Background(), "", "azul")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(page.Products) != 2 || page.Category != "all" || page.Total != 2 {
		t.Fatalf("unexpected page %+v", page)
	}

	page, err = svc.Browse(context.Background(), "faldas", "azul")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(page.Products) != 1 || page.Products[0].ID != "b" {
		t.Fatalf("unexpected filtered page %+v", page.Products)
	}
	if len(page.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", page.Categories)
	}
}

func TestGetFallback(t *testing.T) {
	ctx := context.Background()

	p, degraded, err := New(&stubRepo{getErr: errors.New("timeout")}, true, nil).Get(ctx, "1")
	if err != nil || !degraded || p.Name != "Camiseta Básica Blanca" {
		t.Fatalf("expected sample product, got %+v degraded=%t err=%v", p, degraded, err)
	}

	if _, _, err := New(&stubRepo{products: stored()}, true, nil).Get(ctx, "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when store has products, got %v", err)
	}

	p, degraded, err = New(&stubRepo{}, true, nil).Get(ctx, "2")
	if err != nil || !degraded || p.ID != "2" {
		t.Fatalf("expected sample product for empty store, got %+v err=%v", p, err)
	}

	if _, _, err := New(&stubRepo{}, false, nil).Get(ctx, "2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without fallback, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, true, nil)
	ctx := context.Background()

	bad := []Input{
		{Name: "  ", Price: decimal.NewFromInt(1)},
		{Name: "x", Price: decimal.NewFromInt(-1)},
		{Name: "x", Price: decimal.NewFromInt(1), Stock: -2},
	}
	for _, in := range bad {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}

	created, err := svc.Create(ctx, Input{Name: " Gorra ", Price: decimal.RequireFromString("12.50"), Category: "Accesorios"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "Gorra" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
}

func TestUpdateAppliesPatch(t *testing.T) {
	repo := &stubRepo{products: stored()}
	svc := New(repo, true, nil)

	stock := 9
	price := decimal.RequireFromString("18.00")
	updated, err := svc.Update(context.Background(), "a", Patch{Stock: &stock, Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Stock != 9 || !updated.Price.Equal(price) || updated.Name != "Polo Azul" {
		t.Fatalf("unexpected update %+v", updated)
	}

	neg := -1
	if _, err := svc.Update(context.Background(), "a", Patch{Stock: &neg}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "zzz", Patch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
