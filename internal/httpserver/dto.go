package httpserver

import (
	"time"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"storefront/internal/storefront/orderstatus"
	"storefront/internal/storefront/pricing"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return pricing.Round2(d).StringFixed(2)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type productResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Category:    p.Category,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   timestamp(p.CreatedAt),
		UpdatedAt:   timestamp(p.UpdatedAt),
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type userResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role"`
	IsAdmin     bool   `json:"isAdmin"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		UID:         u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsAdmin:     u.IsAdmin(),
		CreatedAt:   timestamp(u.CreatedAt),
	}
}

type couponResponse struct {
	Code     string `json:"code"`
	Discount int    `json:"discount"`
}

func toCouponResponse(c *domain.Coupon) *couponResponse {
	if c == nil {
		return nil
	}
	return &couponResponse{Code: c.Code, Discount: c.Discount}
}

type cartLineResponse struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Category  string `json:"category,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type cartResponse struct {
	Items      []cartLineResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	Subtotal   string             `json:"subtotal"`
	Coupon     *couponResponse    `json:"appliedCoupon"`
	Discount   string             `json:"discount"`
	Total      string             `json:"total"`
}

func toCartResponse(s cartsvc.Summary) cartResponse {
	items := make([]cartLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		items = append(items, cartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     money(l.Price),
			Category:  l.Category,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
			Subtotal:  money(l.Subtotal()),
		})
	}
	return cartResponse{
		Items:      items,
		TotalItems: s.TotalItems,
		Subtotal:   money(s.Subtotal),
		Coupon:     toCouponResponse(s.Coupon),
		Discount:   money(s.Discount),
		Total:      money(s.Total),
	}
}

type progressResponse struct {
	Kind  orderstatus.Kind   `json:"kind"`
	Steps []orderstatus.Step `json:"steps,omitempty"`
}

type statusResponse struct {
	Status   orderstatus.Status `json:"status"`
	Text     string             `json:"text"`
	Color    string             `json:"color"`
	Progress progressResponse   `json:"progress"`
}

func toStatusResponse(s orderstatus.Status) statusResponse {
	pos := orderstatus.Progress(s)
	return statusResponse{
		Status:   s,
		Text:     orderstatus.Text(s),
		Color:    orderstatus.Color(s),
		Progress: progressResponse{Kind: pos.Kind, Steps: pos.Steps()},
	}
}

type orderItemResponse struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
	Category  string `json:"category,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Items         []orderItemResponse `json:"items"`
	CustomerInfo  domain.CustomerInfo `json:"customerInfo"`
	AppliedCoupon *couponResponse     `json:"appliedCoupon,omitempty"`
	Subtotal      string              `json:"subtotal"`
	Total         string              `json:"total"`
	Status        orderstatus.Status  `json:"status"`
	StatusText    string              `json:"statusText"`
	StatusColor   string              `json:"statusColor"`
	Progress      progressResponse    `json:"progress"`
	CreatedAt     string              `json:"createdAt,omitempty"`
	UpdatedAt     string              `json:"updatedAt,omitempty"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     money(it.Price),
			Quantity:  it.Quantity,
			Subtotal:  money(it.Subtotal()),
			Category:  it.Category,
			ImageURL:  it.ImageURL,
		})
	}
	status := toStatusResponse(o.Status)
	return orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		CustomerInfo:  o.CustomerInfo,
		AppliedCoupon: toCouponResponse(o.AppliedCoupon),
		Subtotal:      money(o.Subtotal),
		Total:         money(o.Total),
		Status:        status.Status,
		StatusText:    status.Text,
		StatusColor:   status.Color,
		Progress:      status.Progress,
		CreatedAt:     timestamp(o.CreatedAt),
		UpdatedAt:     timestamp(o.UpdatedAt),
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
