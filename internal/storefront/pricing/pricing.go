// Package pricing resolves coupon codes against a fixed table and computes
// discounted totals with exact decimal arithmetic.
package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrInvalidCoupon is returned when a code is not in the table.
var ErrInvalidCoupon = fmt.Errorf("%w: invalid coupon code", domain.ErrInvalidInput)

var hundred = decimal.NewFromInt(100)

// Table maps normalized coupon codes to a percent discount.
type Table struct {
	discounts map[string]int
}

// DefaultTable is the built-in coupon set.
var DefaultTable = Table{discounts: map[string]int{
	"DESCUENTO10": 10,
	"BIENVENIDO":  15,
	"VERANO2024":  20,
}}

// NewTable validates and normalizes codes. Every discount must be in [0,100].
func NewTable(discounts map[string]int) (Table, error) {
	t := Table{discounts: make(map[string]int, len(discounts))}
	for code, d := range discounts {
		norm := normalize(code)
		if norm == "" {
			return Table{}, fmt.Errorf("coupon table: empty code")
		}
		if d < 0 || d > 100 {
			return Table{}, fmt.Errorf("coupon table: %s discount %d out of range", norm, d)
		}
		t.discounts[norm] = d
	}
	return t, nil
}

// ParseTable reads "CODE:percent,CODE:percent". An empty string yields DefaultTable.
func ParseTable(raw string) (Table, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultTable, nil
	}
	discounts := make(map[string]int)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		code, pct, ok := strings.Cut(entry, ":")
		if !ok {
			return Table{}, fmt.Errorf("coupon table: malformed entry %q", entry)
		}
		d, err := strconv.Atoi(strings.TrimSpace(pct))
		if err != nil {
			return Table{}, fmt.Errorf("coupon table: %s: %w", code, err)
		}
		discounts[code] = d
	}
	return NewTable(discounts)
}

// Apply looks up code after trimming and upper-casing it.
func (t Table) Apply(code string) (domain.Coupon, error) {
	norm := normalize(code)
	d, ok := t.discounts[norm]
	if !ok || norm == "" {
		return domain.Coupon{}, ErrInvalidCoupon
	}
	return domain.Coupon{Code: norm, Discount: d}, nil
}

// Codes lists the configured codes in lexical order.
func (t Table) Codes() []string {
	out := make([]string, 0, len(t.discounts))
	for code := range t.discounts {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// FinalPrice returns subtotal*(1-discount/100), or subtotal when c is nil.
func FinalPrice(subtotal decimal.Decimal, c *domain.Coupon) decimal.Decimal {
	if c == nil {
		return subtotal
	}
	return subtotal.Mul(decimal.NewFromInt(int64(100 - c.Discount))).Div(hundred)
}

// DiscountAmount is the amount taken off subtotal by c.
func DiscountAmount(subtotal decimal.Decimal, c *domain.Coupon) decimal.Decimal {
	return subtotal.Sub(FinalPrice(subtotal, c))
}

// Round2 rounds half away from zero to cents for display.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
