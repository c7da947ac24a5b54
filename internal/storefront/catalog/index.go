// Package catalog derives the browsable subset of a product list from a
// selected category and a free-text search term.
package catalog

import (
	"strings"

	"storefront/internal/domain"
)

// AllCategories disables the category stage.
const AllCategories = "all"

// Index holds a product list and the view filtered by the current selection.
// It is owned by a single request and is not safe for concurrent use.
type Index struct {
	products   []domain.Product
	category   string
	searchTerm string
	filtered   []domain.Product
}

func NewIndex(products []domain.Product) *Index {
	idx := &Index{category: AllCategories}
	idx.SetProducts(products)
	return idx
}

func (i *Index) SetProducts(products []domain.Product) {
	i.products = products
	i.refresh()
}

// SetCategory selects a category label. An empty label means AllCategories.
func (i *Index) SetCategory(label string) {
	if strings.TrimSpace(label) == "" {
		label = AllCategories
	}
	i.category = label
	i.refresh()
}

func (i *Index) SetSearchTerm(term string) {
	i.searchTerm = term
	i.refresh()
}

func (i *Index) Category() string   { return i.category }
func (i *Index) SearchTerm() string { return i.searchTerm }

// Filtered returns a copy of the current view.
func (i *Index) Filtered() []domain.Product {
	out := make([]domain.Product, len(i.filtered))
	copy(out, i.filtered)
	return out
}

// Categories returns distinct category labels in first-seen order.
func (i *Index) Categories() []string {
	return Categories(i.products)
}

func (i *Index) refresh() {
	i.filtered = Filter(i.products, i.category, i.searchTerm)
}

// Filter keeps products matching the category (case-insensitive equality)
// and whose name or description contains term. Only the exact label
// AllCategories, or an empty one, skips the category stage. The term is
// matched as given, whitespace included. Source order is preserved.
func Filter(products []domain.Product, category, term string) []domain.Product {
	matchCategory := category != "" && category != AllCategories
	category = strings.ToLower(category)
	term = strings.ToLower(term)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchCategory && strings.ToLower(p.Category) != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories collects distinct non-empty categories in first-seen order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
