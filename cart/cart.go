package cart

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"storefront-server/models"
)

// ProductLookup resolves a product id against the current catalog.
type ProductLookup func(id string) (*models.Product, bool)

// Cart owns the committed line items. Every mutation is written through to
// Storage before returning; a failed write is logged and otherwise ignored.
type Cart struct {
	lines  []models.LineItem
	store  Storage
	logger *zap.Logger
}

// Load restores the cart from store. Missing or unreadable data yields an
// empty cart.
func Load(store Storage, logger *zap.Logger) *Cart {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cart{store: store, logger: logger}
	if store == nil {
		return c
	}

	raw, ok, err := store.GetItem(StorageKey)
	if err != nil {
		logger.Warn("cart: reading stored cart failed", zap.Error(err))
		return c
	}
	if !ok || raw == "" {
		return c
	}

	var stored []models.LineItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("cart: stored cart is corrupt, starting empty", zap.Error(err))
		return c
	}
	for _, li := range stored {
		if li.ProductID == "" || li.Quantity < 1 {
			continue
		}
		c.lines = append(c.lines, li)
	}
	return c
}

// AddOrIncrement validates sel against the product's options and commits it.
// A line with the same identity gets its quantity bumped by one; otherwise a
// new line with quantity 1 is appended. It returns the index of the touched
// line. On a validation failure the cart is left as it was.
func (c *Cart) AddOrIncrement(p *models.Product, sel models.Selection) (int, error) {
	if p == nil {
		return -1, ErrProductNotFound
	}
	ready, err := Validate(p.Opts(), sel)
	if err != nil {
		return -1, err
	}

	candidate := ready.Line(p.ID, 1)
	for i := range c.lines {
		if c.lines[i].SameLine(candidate) {
			c.lines[i].Quantity++
			c.persist()
			return i, nil
		}
	}

	c.lines = append(c.lines, candidate)
	c.persist()
	return len(c.lines) - 1, nil
}

// UpdateLine rewrites the options of an existing line in place. Quantity and
// position are kept and no merge is attempted, so two lines may end up with
// the same identity. An empty color keeps the line's previous color.
func (c *Cart) UpdateLine(index int, p *models.Product, sel models.Selection) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	if p == nil {
		return ErrProductNotFound
	}
	line := &c.lines[index]
	if line.ProductID != p.ID {
		return fmt.Errorf("line %d holds product %q, not %q: %w", index, line.ProductID, p.ID, ErrProductNotFound)
	}

	ready, err := Validate(p.Opts(), sel)
	if err != nil {
		return err
	}

	line.Size = ready.Size
	line.DogName = ready.DogName
	line.Note = ready.Note
	if ready.Color != "" {
		line.Color = ready.Color
	}
	c.persist()
	return nil
}

// ChangeQuantity adds delta to a line's quantity. A line that drops to zero
// or below is removed.
func (c *Cart) ChangeQuantity(index, delta int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	c.lines[index].Quantity += delta
	if c.lines[index].Quantity <= 0 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
	}
	c.persist()
	return nil
}

func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	c.persist()
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
	c.persist()
}

// Count is the number of units in the cart, not the number of lines.
func (c *Cart) Count() int {
	n := 0
	for _, li := range c.lines {
		n += li.Quantity
	}
	return n
}

// Total prices every line against the catalog. Lines whose product no longer
// exists contribute nothing.
func (c *Cart) Total(lookup ProductLookup) float64 {
	total := 0.0
	for _, li := range c.lines {
		p, ok := lookup(li.ProductID)
		if !ok || p == nil {
			continue
		}
		total += p.Price * float64(li.Quantity)
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Line(index int) (models.LineItem, bool) {
	if index < 0 || index >= len(c.lines) {
		return models.LineItem{}, false
	}
	return c.lines[index], true
}

// Lines returns a copy of the current line items.
func (c *Cart) Lines() []models.LineItem {
	out := make([]models.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) persist() {
	if c.store == nil {
		return
	}
	lines := c.lines
	if lines == nil {
		lines = []models.LineItem{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		c.logger.Warn("cart: encoding cart failed", zap.Error(err))
		return
	}
	if err := c.store.SetItem(StorageKey, string(data)); err != nil {
		c.logger.Warn("cart: saving cart failed", zap.Error(err), zap.Int("lines", len(lines)))
	}
}
