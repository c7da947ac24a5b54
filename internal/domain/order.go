package domain

import (
	"time"

	"storefront/internal/storefront/orderstatus"

	"github.com/shopspring/decimal"
)

// Coupon is the snapshot of an applied discount code.
type Coupon struct {
	Code     string `json:"code"`
	Discount int    `json:"discount"`
}

// OrderItem is decoupled from the live product so historical orders never change.
type OrderItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CustomerInfo holds contact and delivery details captured at checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

type Order struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	Items         []OrderItem        `json:"items"`
	CustomerInfo  CustomerInfo       `json:"customerInfo"`
	AppliedCoupon *Coupon            `json:"appliedCoupon,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Total         decimal.Decimal    `json:"total"`
	Status        orderstatus.Status `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
