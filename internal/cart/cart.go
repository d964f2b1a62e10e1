// Package cart holds the in-progress selection for a single order and the
// monetary arithmetic over it. A Cart is plain in-memory state; nothing in
// it touches storage.
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/uslu-pos/api/internal/catalog"
	"github.com/uslu-pos/api/internal/enum"
	"github.com/uslu-pos/api/internal/pricing"
)

// Line is one committed cart entry. Product fields are copied in so a later
// catalog edit cannot reach back into an open cart.
type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Category  string
	Quantity  int64
}

// LineTotal returns price × quantity for the line.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Cart accumulates pending picker quantities and committed lines for one
// order. The zero value is not usable; construct with New.
type Cart struct {
	orderType string
	pending   map[string]int64
	lines     []Line
}

// New returns an empty cart for the given order type.
func New(orderType string) *Cart {
	return &Cart{
		orderType: orderType,
		pending:   make(map[string]int64),
	}
}

// OrderType returns the order type the cart was opened with.
func (c *Cart) OrderType() string { return c.orderType }

// AdjustPending moves the scratch picker counter for a product by delta and
// returns the new value. The counter clamps at zero and never touches the
// committed lines. Picker counters share the product id keyspace with the
// catalog, so the repeated lavaş id shares one counter across menus.
func (c *Cart) AdjustPending(productID string, delta int64) int64 {
	n := c.pending[productID] + delta
	if n < 0 {
		n = 0
	}
	c.pending[productID] = n
	return n
}

// PendingQuantity returns the current picker counter for a product.
func (c *Cart) PendingQuantity(productID string) int64 {
	return c.pending[productID]
}

// Commit adds quantity units of the product to the committed lines, merging
// into an existing line with the same product id. quantity <= 0 is a no-op.
// The product's picker counter resets to zero either way.
func (c *Cart) Commit(p catalog.Product, quantity int64) {
	c.pending[p.ID] = 0
	if quantity <= 0 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Quantity:  quantity,
	})
}

// CommitPending commits whatever the picker counter holds for the product.
func (c *Cart) CommitPending(p catalog.Product) {
	c.Commit(p, c.pending[p.ID])
}

// RemoveLine deletes the committed line for a product id. Missing lines are
// a no-op.
func (c *Cart) RemoveLine(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the committed lines in commit order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether no lines have been committed.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Subtotal sums price × quantity over the committed lines.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// DeliveryFee returns the courier surcharge under the given rule. Dine-in
// carts never carry a surcharge.
func (c *Cart) DeliveryFee(rule pricing.FeeRule) decimal.Decimal {
	if c.orderType != enum.OrderTypeDelivery {
		return decimal.Zero
	}
	lines := make([]pricing.Line, len(c.lines))
	for i, l := range c.lines {
		lines[i] = pricing.Line{Name: l.Name, Category: l.Category, Quantity: l.Quantity}
	}
	return rule.DeliveryFee(lines)
}

// Total is Subtotal plus DeliveryFee.
func (c *Cart) Total(rule pricing.FeeRule) decimal.Decimal {
	return c.Subtotal().Add(c.DeliveryFee(rule))
}
