package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (product, size) entry in a cart. Name, Image and UnitPrice
// are snapshots taken when the line was first added; merging more quantity
// into an existing line never refreshes them.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Cart holds the session's line items. Invariant: at most one line per
// (ProductID, Size) pair. Lines keep insertion order of their first add.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartLine `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(sessionID string) *Cart {
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		Items:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) find(productID, size string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			return i
		}
	}
	return -1
}

// AddItem merges the incoming quantity into an existing (product, size) line,
// keeping the existing snapshot fields, or appends a new line.
func (c *Cart) AddItem(line CartLine) {
	if i := c.find(line.ProductID, line.Size); i >= 0 {
		c.Items[i].Quantity += line.Quantity
		c.touch()
		return
	}
	c.Items = append(c.Items, line)
	c.touch()
}

// RemoveItem deletes the line matching (productID, size). Absence is a no-op.
func (c *Cart) RemoveItem(productID, size string) {
	if i := c.find(productID, size); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		c.touch()
	}
}

// UpdateQuantity sets the matching line's quantity. A quantity of zero or
// less removes the line. Unknown (productID, size) is a no-op.
func (c *Cart) UpdateQuantity(productID, size string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID, size)
		return
	}
	if i := c.find(productID, size); i >= 0 {
		c.Items[i].Quantity = quantity
		c.touch()
	}
}

// UpdateSize moves the line at (productID, oldSize) to newSize. When a line
// already exists at the new size the quantities are summed into it and the
// old line is dropped, preserving the one-line-per-(product, size) invariant.
func (c *Cart) UpdateSize(productID, oldSize, newSize string) {
	old := c.find(productID, oldSize)
	if old < 0 {
		return
	}
	if existing := c.find(productID, newSize); existing >= 0 {
		c.Items[existing].Quantity += c.Items[old].Quantity
		c.Items = append(c.Items[:old], c.Items[old+1:]...)
		c.touch()
		return
	}
	c.Items[old].Size = newSize
	c.touch()
}

func (c *Cart) Clear() {
	c.Items = nil
	c.touch()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the quantity sum across all lines, for badge counts.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

// Subtotal is Σ quantity × unit price, exact decimal arithmetic.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		qty := decimal.NewFromInt(int64(c.Items[i].Quantity))
		total = total.Add(c.Items[i].UnitPrice.Mul(qty))
	}
	return total
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
