// Package sample holds the built-in demo catalog and order history used for
// seeding and for degraded-mode catalog reads.
package sample

import (
	"time"

	"storefront/internal/domain"
	"storefront/internal/storefront/orderstatus"
	"storefront/internal/storefront/pricing"

	"github.com/shopspring/decimal"
)

const imageBase = "https://images.unsplash.com/"

func img(photo string) string {
	return imageBase + photo + "?w=400&h=400&fit=crop"
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var products = []domain.Product{
	{ID: "1", Name: "Camiseta Básica Blanca", Description: "Camiseta de algodón 100% orgánico, perfecta para el uso diario. Corte clásico y cómodo.", Price: price("25.99"), Category: "Camisetas", Stock: 50, ImageURL: img("photo-1521572163474-6864f9cf17ab")},
	{ID: "2", Name: "Jeans Slim Fit Azul", Description: "Jeans de corte slim fit en denim de alta calidad. Diseño moderno y versátil.", Price: price("79.99"), Category: "Pantalones", Stock: 30, ImageURL: img("photo-1542272604-787c3835535d")},
	{ID: "3", Name: "Vestido Floral Verano", Description: "Hermoso vestido con estampado floral, ideal para ocasiones especiales y días soleados.", Price: price("65.50"), Category: "Vestidos", Stock: 25, ImageURL: img("photo-1515372039744-b8f02a3ae446")},
	{ID: "4", Name: "Chaqueta de Cuero Negro", Description: "Chaqueta de cuero genuino con diseño clásico. Perfecta para looks casuales y elegantes.", Price: price("149.99"), Category: "Chaquetas", Stock: 15, ImageURL: img("photo-1551028719-00167b16eac5")},
	{ID: "5", Name: "Zapatillas Deportivas", Description: "Zapatillas cómodas y resistentes, ideales para actividades deportivas y uso casual.", Price: price("89.99"), Category: "Calzado", Stock: 40, ImageURL: img("photo-1549298916-b41d501d3772")},
	{ID: "6", Name: "Blusa Elegante Rosa", Description: "Blusa de seda con diseño elegante, perfecta para ocasiones formales y de trabajo.", Price: price("55.00"), Category: "Blusas", Stock: 20, ImageURL: img("photo-1594633312681-425c7b97ccd1")},
	{ID: "7", Name: "Pantalón Formal Negro", Description: "Pantalón de vestir en color negro, corte clásico y tela de alta calidad.", Price: price("69.99"), Category: "Pantalones", Stock: 35, ImageURL: img("photo-1506629905607-d405b4d85c4b")},
	{ID: "8", Name: "Sudadera con Capucha", Description: "Sudadera cómoda con capucha, perfecta para días frescos y looks casuales.", Price: price("45.99"), Category: "Sudaderas", Stock: 60, ImageURL: img("photo-1556821840-3a9fbc86339e")},
}

var categories = []string{"Camisetas", "Pantalones", "Vestidos", "Chaquetas", "Calzado", "Blusas", "Sudaderas"}

// Products returns a fresh copy of the demo catalog.
func Products() []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

// Product looks up a demo product by id.
func Product(id string) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

type pick struct {
	id  string
	qty int
}

type orderTemplate struct {
	status  orderstatus.Status
	items   []pick
	coupon  *domain.Coupon
	notes   string
	created string
	updated string
}

var orderTemplates = []orderTemplate{
	{status: orderstatus.Delivered, items: []pick{{"1", 2}, {"3", 1}}, coupon: &domain.Coupon{Code: "BIENVENIDO", Discount: 15}, notes: "Entregar en horario de oficina", created: "2024-01-15T10:30:00Z", updated: "2024-01-18T14:20:00Z"},
	{status: orderstatus.Shipped, items: []pick{{"4", 1}}, created: "2024-01-20T16:45:00Z", updated: "2024-01-22T09:15:00Z"},
	{status: orderstatus.Processing, items: []pick{{"5", 1}, {"8", 2}}, coupon: &domain.Coupon{Code: "DESCUENTO10", Discount: 10}, notes: "Llamar antes de entregar", created: "2024-01-25T11:20:00Z", updated: "2024-01-25T11:20:00Z"},
	{status: orderstatus.Pending, items: []pick{{"6", 1}, {"7", 1}}, created: "2024-01-28T14:10:00Z", updated: "2024-01-28T14:10:00Z"},
}

// OrdersFor builds the demo order history owned by userID. IDs are left
// empty so the store assigns them.
func OrdersFor(userID string) []domain.Order {
	out := make([]domain.Order, 0, len(orderTemplates))
	for _, tmpl := range orderTemplates {
		o := domain.Order{
			UserID: userID,
			Status: tmpl.status,
			CustomerInfo: domain.CustomerInfo{
				Name:    "Usuario Demo",
				Email:   "usuario@demo.com",
				Phone:   "+1234567890",
				Address: "Calle Principal 123, Ciudad, País",
				Notes:   tmpl.notes,
			},
			Subtotal: decimal.Zero,
		}
		for _, it := range tmpl.items {
			p, _ := Product(it.id)
			item := domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  it.qty,
				Category:  p.Category,
				ImageURL:  p.ImageURL,
			}
			o.Items = append(o.Items, item)
			o.Subtotal = o.Subtotal.Add(item.Subtotal())
		}
		if tmpl.coupon != nil {
			c := *tmpl.coupon
			o.AppliedCoupon = &c
		}
		o.Total = pricing.FinalPrice(o.Subtotal, o.AppliedCoupon)
		o.CreatedAt, _ = time.Parse(time.RFC3339, tmpl.created)
		o.UpdatedAt, _ = time.Parse(time.RFC3339, tmpl.updated)
		out = append(out, o)
	}
	return out
}
