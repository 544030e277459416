// Package cart accumulates order line items before submission. A cart is
// session-scoped, in-memory only and never persisted as its own entity.
package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrQuantityNotPositive = errors.New("quantity must be a positive integer")
	ErrLineNotFound        = errors.New("no line item for that product and size")
)

// Line is one (product, size) pairing with a quantity. Money is integer
// centavos; DiscountCentavos, when set, takes precedence in totals.
type Line struct {
	ProductID        uint
	SizeID           uint
	ProductName      string
	SizeName         string
	UnitCentavos     int64
	DiscountCentavos *int64
	Quantity         int
}

func (l Line) effectiveCentavos() int64 {
	if l.DiscountCentavos != nil {
		return *l.DiscountCentavos
	}
	return l.UnitCentavos
}

// Summary is the consolidated basket handed to persistence and notification.
type Summary struct {
	OrderString   string
	TotalQuantity int
	TotalCentavos int64
}

// Cart holds line items in insertion order. Two items are the same line iff
// both ProductID and SizeID match; adding a duplicate merges additively.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem appends a new line or increments the quantity of an existing one.
func (c *Cart) AddItem(item Line) error {
	if item.Quantity < 1 {
		return ErrQuantityNotPositive
	}
	for i := range c.lines {
		if c.lines[i].ProductID == item.ProductID && c.lines[i].SizeID == item.SizeID {
			c.lines[i].Quantity += item.Quantity
			return nil
		}
	}
	c.lines = append(c.lines, item)
	return nil
}

// RemoveItem drops the matching line; removing an absent line is a no-op.
func (c *Cart) RemoveItem(productID, sizeID uint) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].SizeID == sizeID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity. Dropping a line to zero must go
// through RemoveItem instead.
func (c *Cart) SetQuantity(productID, sizeID uint, quantity int) error {
	if quantity < 1 {
		return ErrQuantityNotPositive
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].SizeID == sizeID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Lines returns the line items in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalQuantity sums the quantities of all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalCentavos sums effective price times quantity over all lines.
func (c *Cart) TotalCentavos() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.effectiveCentavos() * int64(l.Quantity)
	}
	return total
}

// ToOrderSummary renders the basket deterministically, lines in insertion
// order, e.g. "Ube Cake (8\") × 2, Pandesal (dozen) × 1".
func (c *Cart) ToOrderSummary() Summary {
	parts := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		parts = append(parts, fmt.Sprintf("%s (%s) × %d", l.ProductName, l.SizeName, l.Quantity))
	}
	return Summary{
		OrderString:   strings.Join(parts, ", "),
		TotalQuantity: c.TotalQuantity(),
		TotalCentavos: c.TotalCentavos(),
	}
}

// FormatPeso renders integer centavos as a peso amount for display,
// e.g. 35000 -> "₱350.00".
func FormatPeso(centavos int64) string {
	return "₱" + decimal.NewFromInt(centavos).Div(decimal.NewFromInt(100)).StringFixed(2)
}
