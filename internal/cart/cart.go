// Package cart holds the shopping-cart arithmetic. A Cart is a plain value;
// callers decide where it lives (the HTTP layer keeps it in the session).
package cart

import (
	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	ImageURL   string `json:"imageUrl"`
	SKU        string `json:"sku"`
	Slug       string `json:"slug"`
	Quantity   int    `json:"quantity"`
}

// Pricing holds the tax and shipping rules applied to a subtotal.
type Pricing struct {
	TaxRate           float64
	ShippingThreshold int64
	ShippingCost      int64
}

var DefaultPricing = Pricing{
	TaxRate:           0.1,
	ShippingThreshold: 10000,
	ShippingCost:      1500,
}

type Cart struct {
	Items []Item `json:"items"`
}

func (c *Cart) find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges item into the cart. A quantity below 1 counts as 1, so a zero or
// negative quantity can never shrink or empty a line; use UpdateQuantity or
// Decrement for that.
func (c *Cart) Add(item Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if i := c.find(item.ProductID); i >= 0 {
		c.Items[i].Quantity += quantity
		return
	}
	item.Quantity = quantity
	c.Items = append(c.Items, item)
}

func (c *Cart) Remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	i := c.find(productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	c.Items[i].Quantity = quantity
}

func (c *Cart) Increment(productID string) {
	if i := c.find(productID); i >= 0 {
		c.Items[i].Quantity++
	}
}

// Decrement lowers the quantity by one, removing the line at 1.
func (c *Cart) Decrement(productID string) {
	i := c.find(productID)
	if i < 0 {
		return
	}
	if c.Items[i].Quantity > 1 {
		c.Items[i].Quantity--
		return
	}
	c.Remove(productID)
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) ItemQuantity(productID string) int {
	if i := c.find(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

func (c *Cart) Contains(productID string) bool {
	return c.find(productID) >= 0
}

func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.PriceCents * int64(it.Quantity)
	}
	return sum
}

// Tax is the subtotal times the tax rate, rounded half away from zero.
func (p Pricing) Tax(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromFloat(p.TaxRate)).
		Round(0).
		IntPart()
}

// Shipping is free at or above the threshold. An empty cart still quotes the
// flat cost.
func (p Pricing) Shipping(subtotal int64) int64 {
	if subtotal >= p.ShippingThreshold {
		return 0
	}
	return p.ShippingCost
}

type Totals struct {
	TotalItems int   `json:"totalItems"`
	Subtotal   int64 `json:"subtotal"`
	Tax        int64 `json:"tax"`
	Shipping   int64 `json:"shipping"`
	Total      int64 `json:"total"`
}

func (c *Cart) Totals(p Pricing) Totals {
	sub := c.Subtotal()
	tax := p.Tax(sub)
	ship := p.Shipping(sub)
	return Totals{
		TotalItems: c.TotalItems(),
		Subtotal:   sub,
		Tax:        tax,
		Shipping:   ship,
		Total:      sub + tax + ship,
	}
}
