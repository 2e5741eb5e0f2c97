package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is a product snapshot taken when the product was first added,
// plus a quantity that is always at least one.
type CartLine struct {
	ProductID   int             `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

func NewCartLine(p Product, quantity int) CartLine {
	return CartLine{
		ProductID:   p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
		Rating:      p.Rating,
		Description: p.Description,
		Quantity:    quantity,
	}
}

// MarshalJSON writes price as a JSON number, the layout stored carts use.
func (l CartLine) MarshalJSON() ([]byte, error) {
	type line CartLine
	return json.Marshal(struct {
		line
		Price json.Number `json:"price"`
	}{line(l), json.Number(l.Price.String())})
}

func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product id.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from stored lines, dropping non-positive quantities
// and merging repeated product ids into the first occurrence.
func NewCart(lines []CartLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		c.Merge(l)
	}
	return c
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID int) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Add increments the existing line for p or appends a new one with
// quantity 1.
func (c *Cart) Add(p Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, NewCartLine(p, 1))
}

// Merge adds l's quantity to the matching line, or appends l.
func (c *Cart) Merge(l CartLine) {
	if l.Quantity <= 0 {
		return
	}
	if i := c.indexOf(l.ProductID); i >= 0 {
		c.lines[i].Quantity += l.Quantity
		return
	}
	c.lines = append(c.lines, l)
}

func (c *Cart) Remove(productID int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// ApplyDelta adjusts a line's quantity and removes the line once it drops
// to zero or below. It reports false when no line exists for productID.
func (c *Cart) ApplyDelta(productID, delta int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	next := c.lines[i].Quantity + delta
	if next <= 0 {
		return c.Remove(productID)
	}
	c.lines[i].Quantity = next
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) TotalItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) indexOf(productID int) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func EncodeCart(c *Cart) ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []CartLine{}
	}
	return json.Marshal(lines)
}

// DecodeCart parses a stored cart blob. An empty blob is an empty cart.
func DecodeCart(raw []byte) (*Cart, error) {
	if len(raw) == 0 {
		return &Cart{}, nil
	}
	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return NewCart(lines), nil
}
