package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidProduct   = errors.New("invalid product")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// Catalog is the fixed, ordered product list. It is built once and never
// mutated afterwards.
type Catalog struct {
	products []Product
	index    map[int]int
}

func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[int]int, len(products)),
	}

	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: id %d must be positive", ErrInvalidProduct, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %d has negative price", ErrInvalidProduct, p.ID)
		}
		if _, ok := c.index[p.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the catalog in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Featured returns the first limit products. A non-positive limit returns
// everything.
func (c *Catalog) Featured(limit int) []Product {
	if limit <= 0 || limit >= len(c.products) {
		return c.Products()
	}
	out := make([]Product, limit)
	copy(out, c.products[:limit])
	return out
}

func (c *Catalog) Find(id int) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// ByCategory matches case-insensitively; an empty category returns the
// whole catalog.
func (c *Catalog) ByCategory(category string) []Product {
	category = strings.TrimSpace(category)
	if category == "" {
		return c.Products()
	}

	var out []Product
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		key := strings.ToLower(p.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
