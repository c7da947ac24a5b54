package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/service/anonymous"
	authsvc "storefront/internal/service/auth"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	"storefront/internal/storefront/orderstatus"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubProducts struct {
	page    productsvc.Page
	product *domain.Product
	err     error
	created productsvc.Input
}

func (s *stubProducts) List(_ context.Context) (productsvc.Listing, error) {
	return s.page.Listing, s.err
}

func (s *stubProducts) Browse(_ context.Context, category, query string) (productsvc.Page, error) {
	p := s.page
	p.Category, p.Query = category, query
	return p, s.err
}

func (s *stubProducts) Get(_ context.Context, id string) (*domain.Product, bool, error) {
	if s.product == nil || s.product.ID != id {
		return nil, false, domain.ErrNotFound
	}
	return s.product, false, nil
}

func (s *stubProducts) Categories(_ context.Context) ([]string, bool, error) {
	return s.page.Categories, s.page.Degraded, s.err
}

func (s *stubProducts) Create(_ context.Context, in productsvc.Input) (*domain.Product, error) {
	s.created = in
	return &domain.Product{ID: "new", Name: in.Name, Price: in.Price}, nil
}

func (s *stubProducts) Update(_ context.Context, id string, _ productsvc.Patch) (*domain.Product, error) {
	return &domain.Product{ID: id}, nil
}

func (s *stubProducts) Delete(_ context.Context, _ string) error {
	return nil
}

type stubAuth struct {
	users    map[string]*domain.User
	signIn   *domain.User
	loginErr error
	meErr    error
	revoked  []string
}

func (s *stubAuth) Register(_ context.Context, in authsvc.RegisterInput) (*domain.User, error) {
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	return &domain.User{ID: "new", Email: in.Email, Role: domain.RoleCustomer}, nil
}

func (s *stubAuth) SignIn(_ context.Context, _, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.signIn, "access", nil
}

func (s *stubAuth) SignOut(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubAuth) CurrentUser(_ context.Context, token string) (*domain.User, error) {
	if s.meErr != nil {
		return nil, s.meErr
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, authsvc.ErrInvalidToken
}

func (s *stubAuth) AccessTTLSeconds() int { return 3600 }

type stubGuests struct{}

func (stubGuests) Issue(_ context.Context) (string, string, error) {
	return "guest-token", "g1", nil
}

func (stubGuests) Lookup(_ context.Context, token string) (string, error) {
	if token != "guest-token" {
		return "", anonymous.ErrInvalidToken
	}
	return "g1", nil
}

func (stubGuests) AccessTTLSeconds() int { return 60 }

type stubCarts struct {
	keys    []string
	merged  [2]string
	summary cartsvc.Summary
	err     error
}

func (s *stubCarts) record(key string) (cartsvc.Summary, error) {
	s.keys = append(s.keys, key)
	return s.summary, s.err
}

func (s *stubCarts) Get(_ context.Context, key string) (cartsvc.Summary, error) {
	return s.record(key)
}

func (s *stubCarts) Add(_ context.Context, key, _ string) (cartsvc.Summary, error) {
	return s.record(key)
}

func (s *stubCarts) Remove(_ context.Context, key, _ string) (cartsvc.Summary, error) {
	return s.record(key)
}

func (s *stubCarts) SetQuantity(_ context.Context, key, _ string, _ int) (cartsvc.Summary, error) {
	return s.record(key)
}

func (s *stubCarts) Clear(_ context.Context, key string) error {
	_, err := s.record(key)
	return err
}

func (s *stubCarts) ApplyCoupon(_ context.Context, key, _ string) (cartsvc.Summary, error) {
	return s.record(key)
}

func (s *stubCarts) RemoveCoupon(_ context.Context, key string) (cartsvc.Summary, error) {
	return s.record(key)
}

func (s *stubCarts) Merge(_ context.Context, guestKey, userKey string) (cartsvc.Summary, error) {
	s.merged = [2]string{guestKey, userKey}
	return s.summary, nil
}

type stubOrders struct {
	order    *domain.Order
	err      error
	status   string
	filtered string
}

func (s *stubOrders) Checkout(_ context.Context, _ *domain.User, _ domain.CustomerInfo) (*ordersvc.CheckoutResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ordersvc.CheckoutResult{Order: s.order, HandoffURL: "https://wa.me/1?text=x"}, nil
}

func (s *stubOrders) Get(_ context.Context, _ *domain.User, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrders) ListMine(_ context.Context, _ *domain.User, status string) ([]domain.Order, error) {
	s.filtered = status
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Order{*s.order}, nil
}

func (s *stubOrders) ListAll(_ context.Context, actor *domain.User, status string) ([]domain.Order, error) {
	s.filtered = status
	return []domain.Order{*s.order}, s.err
}

func (s *stubOrders) UpdateStatus(_ context.Context, _ *domain.User, _ string, status string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.status = status
	o := *s.order
	o.Status = orderstatus.Status(status)
	return &o, nil
}

func (s *stubOrders) Stats(_ context.Context, _ *domain.User) (ordersvc.Stats, error) {
	return ordersvc.Stats{Total: 3, Delivered: 1, Open: 2}, s.err
}

var (
	customer  = &domain.User{ID: "u1", Email: "ana@example.com", Role: domain.RoleCustomer}
	adminUser = &domain.User{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}
)

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:     "ord-1",
		UserID: customer.ID,
		Items: []domain.OrderItem{
			{ProductID: "1", Name: "Camiseta", Price: decimal.RequireFromString("25.99"), Quantity: 2},
		},
		AppliedCoupon: &domain.Coupon{Code: "DESCUENTO10", Discount: 10},
		Subtotal:      decimal.RequireFromString("51.98"),
		Total:         decimal.RequireFromString("46.782"),
		Status:        orderstatus.Shipped,
	}
}

type fixture struct {
	products *stubProducts
	auth     *stubAuth
	carts    *stubCarts
	orders   *stubOrders
	router   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := &fixture{
		products: &stubProducts{},
		auth: &stubAuth{
			users:  map[string]*domain.User{"cust": customer, "admin": adminUser},
			signIn: customer,
		},
		carts:  &stubCarts{},
		orders: &stubOrders{order: sampleOrder()},
	}
	router, err := buildRouter(logDiscard(), nil, Deps{
		Products: f.products,
		Auth:     f.auth,
		Guests:   stubGuests{},
		Carts:    f.carts,
		Orders:   f.orders,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	f.router = router
	return f
}

func (f *fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}
