package cart

import "storefront-server/models"

// SelectionPatch carries the fields to overwrite; nil fields are left alone.
type SelectionPatch struct {
	Color   *string
	Size    *string
	DogName *string
	Note    *string
}

// String returns a pointer to v, for building patches inline.
func String(v string) *string {
	return &v
}

// Selections keeps one in-progress selection per product id.
type Selections struct {
	byProduct map[string]*models.Selection
}

func NewSelections() *Selections {
	return &Selections{byProduct: make(map[string]*models.Selection)}
}

// Exists reports whether a selection was already created for productID.
func (s *Selections) Exists(productID string) bool {
	_, ok := s.byProduct[productID]
	return ok
}

// GetOrCreate returns the stored selection, creating an empty one on first
// access.
func (s *Selections) GetOrCreate(productID string) models.Selection {
	return *s.entry(productID)
}

func (s *Selections) entry(productID string) *models.Selection {
	sel, ok := s.byProduct[productID]
	if !ok {
		sel = &models.Selection{}
		s.byProduct[productID] = sel
	}
	return sel
}

// Set merges patch into the stored selection and returns the result.
func (s *Selections) Set(productID string, patch SelectionPatch) models.Selection {
	sel := s.entry(productID)
	if patch.Color != nil {
		sel.Color = *patch.Color
	}
	if patch.Size != nil {
		sel.Size = *patch.Size
	}
	if patch.DogName != nil {
		sel.DogName = *patch.DogName
	}
	if patch.Note != nil {
		sel.Note = *patch.Note
	}
	return *sel
}

// EnsureDefaultColor adopts the product's first color when none is chosen.
func (s *Selections) EnsureDefaultColor(p *models.Product) models.Selection {
	sel := s.entry(p.ID)
	opts := p.Opts()
	if opts.HasColors() && sel.Color == "" {
		sel.Color = opts.DefaultColor()
	}
	return *sel
}

// Snapshot copies every stored selection, keyed by product id.
func (s *Selections) Snapshot() map[string]models.Selection {
	out := make(map[string]models.Selection, len(s.byProduct))
	for id, sel := range s.byProduct {
		out[id] = *sel
	}
	return out
}

// Restore replaces the stored selections with a previous Snapshot.
func (s *Selections) Restore(saved map[string]models.Selection) {
	s.byProduct = make(map[string]*models.Selection, len(saved))
	for id, sel := range saved {
		sel := sel
		s.byProduct[id] = &sel
	}
}
