package cart

import (
	"context"
	"testing"

	"storefront/internal/db/dbtest"
	"storefront/internal/domain"
	"storefront/internal/storefront/cart"

	"github.com/shopspring/decimal"
)

func TestPostgres_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)
	repo := NewPostgres(pool, nil)

	empty, err := repo.Load(ctx, "guest:missing")
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if len(empty.Lines) != 0 || empty.Coupon != nil {
		t.Fatalf("expected empty cart, got %+v", empty)
	}

	lines := []cart.Line{
		{ProductID: "3", Name: "Vestido", Price: decimal.RequireFromString("65.50"), Quantity: 1},
		{ProductID: "1", Name: "Camiseta", Price: decimal.RequireFromString("25.99"), Quantity: 2},
	}
	coupon := &domain.Coupon{Code: "BIENVENIDO", Discount: 15}
	if err := repo.Save(ctx, "user:abc", Stored{Lines: lines, Coupon: coupon}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx, "user:abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Lines) != 2 || got.Lines[0].ProductID != "3" || got.Lines[1].Quantity != 2 {
		t.Fatalf("unexpected lines %+v", got.Lines)
	}
	if !got.Lines[1].Price.Equal(decimal.RequireFromString("25.99")) {
		t.Fatalf("price snapshot lost: %s", got.Lines[1].Price)
	}
	if got.Coupon == nil || *got.Coupon != *coupon {
		t.Fatalf("unexpected coupon %+v", got.Coupon)
	}

	if err := repo.Save(ctx, "user:abc", Stored{Lines: lines[:1]}); err != nil {
		t.Fatalf("Save replace: %v", err)
	}
	got, err = repo.Load(ctx, "user:abc")
	if err != nil {
		t.Fatalf("Load after replace: %v", err)
	}
	if len(got.Lines) != 1 || got.Coupon != nil {
		t.Fatalf("expected one line and no coupon, got %+v", got)
	}

	if err := repo.Delete(ctx, "user:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.Load(ctx, "user:abc")
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if len(got.Lines) != 0 {
		t.Fatalf("expected empty after delete, got %+v", got.Lines)
	}
}
