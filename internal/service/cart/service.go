package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	"storefront/internal/storefront/cart"
	"storefront/internal/storefront/pricing"

	"github.com/shopspring/decimal"
)

type cartRepo interface {
	Load(ctx context.Context, sessionKey string) (*cartrepo.Stored, error)
	Save(ctx context.Context, sessionKey string, s cartrepo.Stored) error
	Delete(ctx context.Context, sessionKey string) error
}

type productLookup interface {
	Get(ctx context.Context, id string) (*domain.Product, bool, error)
}

// Service loads a session's cart, applies one aggregator operation and saves it.
type Service struct {
	repo     cartRepo
	products productLookup
	coupons  pricing.Table
	logger   *log.Logger
}

func New(repo cartRepo, products productLookup, coupons pricing.Table, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, products: products, coupons: coupons, logger: logger}
}

// UserKey and GuestKey build session keys for the two kinds of shopper.
func UserKey(userID string) string   { return "user:" + userID }
func GuestKey(guestID string) string { return "guest:" + guestID }

// Summary is the cart as shown to the shopper. Subtotal is never discounted
// in place; Total is derived from it and the coupon.
type Summary struct {
	Lines      []cart.Line
	TotalItems int
	Subtotal   decimal.Decimal
	Coupon     *domain.Coupon
	Discount   decimal.Decimal
	Total      decimal.Decimal
}

func (s Summary) IsEmpty() bool { return len(s.Lines) == 0 }

func (s *Service) Get(ctx context.Context, key string) (Summary, error) {
	c, coupon, err := s.load(ctx, key)
	if err != nil {
		return Summary{}, err
	}
	return summarize(c, coupon), nil
}

// Add puts one unit of the product in the cart.
func (s *Service) Add(ctx context.Context, key, productID string) (Summary, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Summary{}, fmt.Errorf("%w: productId required", domain.ErrInvalidInput)
	}
	p, _, err := s.products.Get(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	return s.mutate(ctx, key, func(c *cart.Cart, _ **domain.Coupon) error {
		c.AddItem(*p)
		return nil
	})
}

func (s *Service) Remove(ctx context.Context, key, productID string) (Summary, error) {
	return s.mutate(ctx, key, func(c *cart.Cart, _ **domain.Coupon) error {
		c.RemoveItem(productID)
		return nil
	})
}

// SetQuantity sets the exact quantity; zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, key, productID string, quantity int) (Summary, error) {
	return s.mutate(ctx, key, func(c *cart.Cart, _ **domain.Coupon) error {
		c.UpdateQuantity(productID, quantity)
		return nil
	})
}

// Clear empties the cart and drops the applied coupon.
func (s *Service) Clear(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Printf("cart svc: cleared session=%s", key)
	return nil
}

// ApplyCoupon replaces the applied coupon. An unknown code leaves the cart
// unchanged and returns pricing.ErrInvalidCoupon.
func (s *Service) ApplyCoupon(ctx context.Context, key, code string) (Summary, error) {
	coupon, err := s.coupons.Apply(code)
	if err != nil {
		return Summary{}, err
	}
	return s.mutate(ctx, key, func(_ *cart.Cart, applied **domain.Coupon) error {
		*applied = &coupon
		return nil
	})
}

func (s *Service) RemoveCoupon(ctx context.Context, key string) (Summary, error) {
	return s.mutate(ctx, key, func(_ *cart.Cart, applied **domain.Coupon) error {
		*applied = nil
		return nil
	})
}

// Merge folds the guest cart into the user's cart and deletes the guest cart.
// The user's coupon wins; the guest coupon is kept only when the user has none.
func (s *Service) Merge(ctx context.Context, guestKey, userKey string) (Summary, error) {
	guest, guestCoupon, err := s.load(ctx, guestKey)
	if err != nil {
		return Summary{}, err
	}
	if guest.IsEmpty() && guestCoupon == nil {
		return s.Get(ctx, userKey)
	}
	summary, err := s.mutate(ctx, userKey, func(c *cart.Cart, applied **domain.Coupon) error {
		c.Merge(guest.Lines())
		if *applied == nil {
			*applied = guestCoupon
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	if err := s.repo.Delete(ctx, guestKey); err != nil {
		return Summary{}, err
	}
	s.logger.Printf("cart svc: merged guest=%s into %s lines=%d", guestKey, userKey, len(summary.Lines))
	return summary, nil
}

func (s *Service) mutate(ctx context.Context, key string, fn func(*cart.Cart, **domain.Coupon) error) (Summary, error) {
	c, coupon, err := s.load(ctx, key)
	if err != nil {
		return Summary{}, err
	}
	if err := fn(c, &coupon); err != nil {
		return Summary{}, err
	}
	if err := s.repo.Save(ctx, key, cartrepo.Stored{Lines: c.Lines(), Coupon: coupon}); err != nil {
		s.logger.Printf("cart svc: save session=%s error=%v", key, err)
		return Summary{}, err
	}
	return summarize(c, coupon), nil
}

func (s *Service) load(ctx context.Context, key string) (*cart.Cart, *domain.Coupon, error) {
	if strings.TrimSpace(key) == "" {
		return nil, nil, errors.New("cart session key required")
	}
	stored, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	return cart.Restore(stored.Lines), stored.Coupon, nil
}

func summarize(c *cart.Cart, coupon *domain.Coupon) Summary {
	totals := c.Totals()
	return Summary{
		Lines:      c.Lines(),
		TotalItems: totals.TotalItems,
		Subtotal:   totals.TotalPrice,
		Coupon:     coupon,
		Discount:   pricing.DiscountAmount(totals.TotalPrice, coupon),
		Total:      pricing.FinalPrice(totals.TotalPrice, coupon),
	}
}
