// Package catalog keeps the product listing: what may be stored, at what
// price, and how many units the warehouse currently tracks per product.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// List is the product catalog, keyed by product ID.
type List struct {
	Products map[string]*model.Product `json:"products"`
}

func NewList() *List {
	return &List{Products: map[string]*model.Product{}}
}

// Add registers a new product with zero stock and returns it. Names are
// unique case-insensitively.
func (l *List) Add(name string, priceCents int64, quality model.Quality) (*model.Product, error) {
	const op = "catalog.Add"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w: empty name", op, model.ErrInvalidArgument)
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("%s: %w: negative price", op, model.ErrInvalidArgument)
	}
	if _, ok := l.IDByName(name); ok {
		return nil, fmt.Errorf("%s: %w: %q", op, model.ErrNameExists, name)
	}

	product := &model.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceCents: priceCents,
		Quality:    quality,
	}
	l.Products[product.ID] = product
	return product, nil
}

// Remove delists a product. A product with remaining stock cannot be
// removed.
func (l *List) Remove(id string) error {
	const op = "catalog.Remove"

	product, ok := l.Products[id]
	if !ok {
		return fmt.Errorf("%s: %w: %s", op, model.ErrProductNotListed, id)
	}
	if product.Quantity > 0 {
		return fmt.Errorf("%s: %w: %d units of %q", op, model.ErrHasStock, product.Quantity, product.Name)
	}
	delete(l.Products, id)
	return nil
}

func (l *List) Product(id string) (*model.Product, error) {
	product, ok := l.Products[id]
	if !ok {
		return nil, fmt.Errorf("catalog.Product: %w: %s", model.ErrProductNotListed, id)
	}
	return product, nil
}

// IDByName resolves a product ID from its name, case-insensitively.
func (l *List) IDByName(name string) (string, bool) {
	for id, product := range l.Products {
		if strings.EqualFold(product.Name, name) {
			return id, true
		}
	}
	return "", false
}

// ProductByName resolves a product from its name, case-insensitively.
func (l *List) ProductByName(name string) (*model.Product, error) {
	id, ok := l.IDByName(name)
	if !ok {
		return nil, fmt.Errorf("catalog.ProductByName: %w: %q", model.ErrProductNotListed, name)
	}
	return l.Products[id], nil
}

// StepQuantity adjusts the tracked stock of a product by delta, which may be
// negative. The result may not go below zero.
func (l *List) StepQuantity(id string, delta int) error {
	const op = "catalog.StepQuantity"

	product, ok := l.Products[id]
	if !ok {
		return fmt.Errorf("%s: %w: %s", op, model.ErrProductNotListed, id)
	}
	if product.Quantity+delta < 0 {
		return fmt.Errorf("%s: %w: have %d, step %d", op, model.ErrNotEnoughQuantity, product.Quantity, delta)
	}
	product.Quantity += delta
	return nil
}

// EmptyQuantity zeroes the tracked stock of a product and reports how many
// units it held.
func (l *List) EmptyQuantity(id string) (int, error) {
	product, ok := l.Products[id]
	if !ok {
		return 0, fmt.Errorf("catalog.EmptyQuantity: %w: %s", model.ErrProductNotListed, id)
	}
	had := product.Quantity
	product.Quantity = 0
	return had, nil
}

func (l *List) SetPrice(id string, priceCents int64) error {
	const op = "catalog.SetPrice"

	product, ok := l.Products[id]
	if !ok {
		return fmt.Errorf("%s: %w: %s", op, model.ErrProductNotListed, id)
	}
	if priceCents < 0 {
		return fmt.Errorf("%s: %w: negative price", op, model.ErrInvalidArgument)
	}
	product.PriceCents = priceCents
	return nil
}

// All returns every product sorted by name.
func (l *List) All() []*model.Product {
	products := lo.Values(l.Products)
	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return products
}

func (l *List) Len() int { return len(l.Products) }

// FilterByQuality returns products of one quality kind, sorted by name.
func (l *List) FilterByQuality(kind model.QualityKind) []*model.Product {
	return lo.Filter(l.All(), func(p *model.Product, _ int) bool {
		return p.Quality.Kind == kind
	})
}

// FilterByMaxPrice returns products priced at most priceCents, sorted by
// name.
func (l *List) FilterByMaxPrice(priceCents int64) []*model.Product {
	return lo.Filter(l.All(), func(p *model.Product, _ int) bool {
		return p.PriceCents <= priceCents
	})
}

// FilterByMinPrice returns products priced at least priceCents, sorted by
// name.
func (l *List) FilterByMinPrice(priceCents int64) []*model.Product {
	return lo.Filter(l.All(), func(p *model.Product, _ int) bool {
		return p.PriceCents >= priceCents
	})
}

// SearchByName returns products whose name contains every word of the query,
// case-insensitively, sorted by name.
func (l *List) SearchByName(query string) []*model.Product {
	words := strings.Fields(strings.ToLower(query))
	return lo.Filter(l.All(), func(p *model.Product, _ int) bool {
		name := strings.ToLower(p.Name)
		for _, word := range words {
			if !strings.Contains(name, word) {
				return false
			}
		}
		return true
	})
}

// Bootstrap seeds the default products into an empty catalog.
func Bootstrap(l *List) error {
	seed := []struct {
		name    string
		price   int64
		quality model.Quality
	}{
		{"Apple", 100, model.Normal()},
		{"Banana", 50, model.Fragile(3)},
		{"Watermelon", 75, model.Oversized(3)},
	}
	for _, s := range seed {
		if _, err := l.Add(s.name, s.price, s.quality); err != nil {
			return fmt.Errorf("catalog.Bootstrap: %w", err)
		}
	}
	return nil
}
