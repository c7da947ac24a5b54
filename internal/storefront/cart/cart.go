// Package cart aggregates product selections into quantity-bearing lines and
// derives item and price totals from them.
package cart

import (
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// Line is a product snapshot taken when the product was first added.
type Line struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	TotalItems int
	TotalPrice decimal.Decimal
}

// Cart keeps at most one line per product id, each with quantity >= 1.
// A Cart belongs to one session and is not safe for concurrent use.
type Cart struct {
	lines []Line
	pos   map[string]int
}

func New() *Cart {
	return &Cart{pos: make(map[string]int)}
}

// Restore rebuilds a cart from persisted lines. Duplicates are merged and
// lines with a non-positive quantity are dropped.
func Restore(lines []Line) *Cart {
	c := New()
	c.Merge(lines)
	return c
}

// AddItem increments the existing line or inserts a new one with quantity 1.
func (c *Cart) AddItem(p domain.Product) {
	if i, ok := c.pos[p.ID]; ok {
		c.lines[i].Quantity++
		return
	}
	c.insert(Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	})
}

// Merge folds lines into the cart, summing quantities for ids already present.
func (c *Cart) Merge(lines []Line) {
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			continue
		}
		if i, ok := c.pos[l.ProductID]; ok {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.insert(l)
	}
}

// RemoveItem deletes the line for productID. Unknown ids are ignored.
func (c *Cart) RemoveItem(productID string) {
	i, ok := c.pos[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.reindex()
}

// UpdateQuantity sets the quantity exactly; q <= 0 removes the line.
func (c *Cart) UpdateQuantity(productID string, q int) {
	if q <= 0 {
		c.RemoveItem(productID)
		return
	}
	if i, ok := c.pos[productID]; ok {
		c.lines[i].Quantity = q
	}
}

func (c *Cart) Clear() {
	c.lines = nil
	c.pos = make(map[string]int)
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Totals() Totals {
	t := Totals{TotalPrice: decimal.Zero}
	for _, l := range c.lines {
		t.TotalItems += l.Quantity
		t.TotalPrice = t.TotalPrice.Add(l.Subtotal())
	}
	return t
}

func (c *Cart) insert(l Line) {
	c.pos[l.ProductID] = len(c.lines)
	c.lines = append(c.lines, l)
}

func (c *Cart) reindex() {
	c.pos = make(map[string]int, len(c.lines))
	for i, l := range c.lines {
		c.pos[l.ProductID] = i
	}
}
