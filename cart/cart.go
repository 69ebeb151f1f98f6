// Package cart is the in-memory cart of one session. Lines are keyed by
// (menu item id, preparation type) and kept in insertion order.
//
// A Cart is not safe for concurrent use. The checkout flow that owns it
// serializes every access.
package cart

import (
	"errors"

	"github.com/junaidrashid-git/biryani-house/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("item not in cart")
)

type Line struct {
	MenuItemID      int                    `json:"menu_item_id"`
	PreparationType models.PreparationType `json:"preparation_type"`
	Name            string                 `json:"name"`
	UnitPrice       int                    `json:"unit_price"`
	Quantity        int                    `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddLine merges quantity into the line with the same item and preparation
// type, or appends a new line. Name and price are copied from item now and
// never refreshed.
func (c *Cart) AddLine(item models.MenuItem, quantity int, variant models.PreparationType) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID && c.lines[i].PreparationType == variant {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		MenuItemID:      item.ID,
		PreparationType: variant,
		Name:            item.Name,
		UnitPrice:       item.Price,
		Quantity:        quantity,
	})
	return nil
}

// RemoveLine drops every line for itemID regardless of preparation type.
func (c *Cart) RemoveLine(itemID int) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.MenuItemID != itemID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// SetQuantity changes the first line matching itemID.
func (c *Cart) SetQuantity(itemID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == itemID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) TotalAmount() int {
	total := 0
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// LineCount is the number of portions in the cart, used for the badge.
func (c *Cart) LineCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
