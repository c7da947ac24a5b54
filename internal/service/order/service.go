package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/storefront/orderstatus"
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, status orderstatus.Status) ([]domain.Order, error)
	ListAll(ctx context.Context, status orderstatus.Status) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status orderstatus.Status) (*domain.Order, error)
}

type cartSource interface {
	Get(ctx context.Context, key string) (cartsvc.Summary, error)
	Clear(ctx context.Context, key string) error
}

// Handoff turns a stored order into a link that forwards it to the store.
type Handoff interface {
	Handoff(o domain.Order) (string, error)
}

type Service struct {
	repo    orderRepo
	carts   cartSource
	handoff Handoff
	logger  *log.Logger
}

func New(repo orderRepo, carts cartSource, handoff Handoff, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, carts: carts, handoff: handoff, logger: logger}
}

// CheckoutResult carries the stored order and the handoff link. When the link
// could not be built the order is still placed and HandoffError says why.
type CheckoutResult struct {
	Order        *domain.Order
	HandoffURL   string
	HandoffError string
}

// Checkout turns the user's cart into a pending order and empties the cart.
func (s *Service) Checkout(ctx context.Context, user *domain.User, info domain.CustomerInfo) (*CheckoutResult, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: sign in required", domain.ErrForbidden)
	}
	info = normalizeInfo(info, user)
	if err := validateInfo(info); err != nil {
		return nil, err
	}

	key := cartsvc.UserKey(user.ID)
	summary, err := s.carts.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if summary.IsEmpty() {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalidInput)
	}

	items := make([]domain.OrderItem, 0, len(summary.Lines))
	for _, l := range summary.Lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Category:  l.Category,
			ImageURL:  l.ImageURL,
		})
	}

	created, err := s.repo.Create(ctx, domain.Order{
		UserID:        user.ID,
		Items:         items,
		CustomerInfo:  info,
		AppliedCoupon: summary.Coupon,
		Subtotal:      summary.Subtotal,
		Total:         summary.Total,
		Status:        orderstatus.Pending,
	})
	if err != nil {
		s.logger.Printf("order svc: checkout user_id=%s error=%v", user.ID, err)
		return nil, err
	}
	s.logger.Printf("order svc: checkout user_id=%s order_id=%s total=%s", user.ID, created.ID, created.Total.StringFixed(2))

	if err := s.carts.Clear(ctx, key); err != nil {
		s.logger.Printf("order svc: clear cart after checkout order_id=%s error=%v", created.ID, err)
	}

	res := &CheckoutResult{Order: created}
	if s.handoff != nil {
		link, err := s.handoff.Handoff(*created)
		if err != nil {
			s.logger.Printf("order svc: handoff order_id=%s error=%v", created.ID, err)
			res.HandoffError = err.Error()
		} else {
			res.HandoffURL = link
		}
	}
	return res, nil
}

// Get returns the order when user owns it or is an admin. Other callers get
// ErrNotFound so order ids are not disclosed.
func (s *Service) Get(ctx context.Context, user *domain.User, id string) (*domain.Order, error) {
	if user == nil {
		return nil, domain.ErrNotFound
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != user.ID && !user.IsAdmin() {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListMine returns the user's orders newest first, optionally by status.
func (s *Service) ListMine(ctx context.Context, user *domain.User, status string) ([]domain.Order, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: sign in required", domain.ErrForbidden)
	}
	st, err := parseFilter(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, user.ID, st)
}

func (s *Service) ListAll(ctx context.Context, actor *domain.User, status string) ([]domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	st, err := parseFilter(status)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx, st)
}

// UpdateStatus sets any known status. Admins may override the linear flow,
// including reopening delivered or cancelled orders.
func (s *Service) UpdateStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	o, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order svc: status order_id=%s status=%s by=%s", id, st, actor.ID)
	return o, nil
}

// Stats summarizes a user's order history.
type Stats struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Open      int `json:"open"`
	Cancelled int `json:"cancelled"`
}

func (s *Service) Stats(ctx context.Context, user *domain.User) (Stats, error) {
	orders, err := s.ListMine(ctx, user, "")
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, o := range orders {
		st.Total++
		switch {
		case o.Status == orderstatus.Delivered:
			st.Delivered++
		case o.Status == orderstatus.Cancelled:
			st.Cancelled++
		case orderstatus.IsOpen(o.Status):
			st.Open++
		}
	}
	return st, nil
}

// ParseStatus maps unknown statuses onto domain.ErrInvalidInput.
func ParseStatus(raw string) (orderstatus.Status, error) {
	st, err := orderstatus.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w %q", domain.ErrInvalidInput, err, raw)
	}
	return st, nil
}

func parseFilter(raw string) (orderstatus.Status, error) {
	if strings.TrimSpace(raw) == "" || strings.EqualFold(strings.TrimSpace(raw), "all") {
		return "", nil
	}
	return ParseStatus(raw)
}

func normalizeInfo(info domain.CustomerInfo, user *domain.User) domain.CustomerInfo {
	info.Name = strings.TrimSpace(info.Name)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Address = strings.TrimSpace(info.Address)
	info.Notes = strings.TrimSpace(info.Notes)
	if info.Email == "" {
		info.Email = user.Email
	}
	if info.Name == "" {
		info.Name = user.DisplayName
	}
	return info
}

func validateInfo(info domain.CustomerInfo) error {
	var missing []string
	if info.Name == "" {
		missing = append(missing, "name")
	}
	if info.Phone == "" {
		missing = append(missing, "phone")
	}
	if info.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}
