package cart

import (
	"strings"

	"storefront-server/models"
)

// Form holds the raw option inputs captured by a quick view, a product page
// or the cart line editor. Color is left empty when the view has no swatch
// picker.
type Form struct {
	Size    string
	DogName string
	Note    string
	Color   string
}

// Session is the storefront's application context: the catalog snapshot, the
// per-product selections and the cart, passed explicitly to every operation.
type Session struct {
	Products   []models.Product
	Selections *Selections
	Cart       *Cart
}

func NewSession(products []models.Product, c *Cart) *Session {
	return &Session{
		Products:   products,
		Selections: NewSelections(),
		Cart:       c,
	}
}

// Lookup finds a product by id only.
func (s *Session) Lookup(id string) (*models.Product, bool) {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i], true
		}
	}
	return nil, false
}

// Product resolves a key the way product links do: id first, then slug or
// handle.
func (s *Session) Product(key string) (*models.Product, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	if p, ok := s.Lookup(key); ok {
		return p, true
	}
	for i := range s.Products {
		p := &s.Products[i]
		if (p.Slug != "" && p.Slug == key) || (p.Handle != "" && p.Handle == key) {
			return p, true
		}
	}
	return nil, false
}

// Display returns the selection shown on a product card, adopting the
// default color on first display.
func (s *Session) Display(productID string) (models.Selection, error) {
	p, ok := s.Lookup(productID)
	if !ok {
		return models.Selection{}, ErrProductNotFound
	}
	return s.Selections.EnsureDefaultColor(p), nil
}

// SaveSelection stores form inputs for the fields the product supports
// without committing anything to the cart.
func (s *Session) SaveSelection(productID string, form Form) (models.Selection, error) {
	p, ok := s.Lookup(productID)
	if !ok {
		return models.Selection{}, ErrProductNotFound
	}
	return s.Selections.Set(p.ID, formPatch(p.Opts(), form, strings.TrimSpace(form.DogName))), nil
}

// QuickAdd commits the product's stored selection, as the card's add button
// does.
func (s *Session) QuickAdd(productID string) (int, error) {
	p, ok := s.Lookup(productID)
	if !ok {
		return -1, ErrProductNotFound
	}
	sel := s.Selections.EnsureDefaultColor(p)
	ready, err := Validate(p.Opts(), sel)
	if err != nil {
		return -1, err
	}
	if p.Opts().NameRequired() {
		s.Selections.Set(p.ID, SelectionPatch{DogName: String(ready.DogName)})
	}
	return s.Cart.AddOrIncrement(p, ready)
}

// QuickViewAdd validates the quick view form, stores it as the product's
// selection and commits it.
func (s *Session) QuickViewAdd(productID string, form Form) (int, error) {
	p, ok := s.Lookup(productID)
	if !ok {
		return -1, ErrProductNotFound
	}
	opts := p.Opts()
	candidate := s.candidate(p, form)
	ready, err := Validate(opts, candidate)
	if err != nil {
		return -1, err
	}
	s.Selections.Set(p.ID, formPatch(opts, form, ready.DogName))
	return s.QuickAdd(p.ID)
}

// PageAdd commits straight from the full product page. The page keeps its
// own inputs, so the shared selection is not touched.
func (s *Session) PageAdd(productID string, form Form) (int, error) {
	p, ok := s.Product(productID)
	if !ok {
		return -1, ErrProductNotFound
	}
	opts := p.Opts()
	sel := models.Selection{
		Size:    form.Size,
		DogName: strings.TrimSpace(form.DogName),
		Note:    strings.TrimSpace(form.Note),
		Color:   form.Color,
	}
	if sel.Color == "" {
		sel.Color = opts.DefaultColor()
	}
	ready, err := Validate(opts, sel)
	if err != nil {
		return -1, err
	}
	return s.Cart.AddOrIncrement(p, ready)
}

// BeginEdit loads a cart line's options into the product's selection so the
// editor opens pre-filled.
func (s *Session) BeginEdit(index int) (models.Selection, error) {
	line, ok := s.Cart.Line(index)
	if !ok {
		return models.Selection{}, ErrLineNotFound
	}
	if _, ok := s.Lookup(line.ProductID); !ok {
		return models.Selection{}, ErrProductNotFound
	}
	return s.Selections.Set(line.ProductID, SelectionPatch{
		Size:    String(line.Size),
		DogName: String(line.DogName),
		Note:    String(line.Note),
		Color:   String(line.Color),
	}), nil
}

// UpdateLine applies the editor form to an existing cart line.
func (s *Session) UpdateLine(index int, form Form) error {
	line, ok := s.Cart.Line(index)
	if !ok {
		return ErrLineNotFound
	}
	p, ok := s.Lookup(line.ProductID)
	if !ok {
		return ErrProductNotFound
	}
	opts := p.Opts()
	candidate := s.candidate(p, form)
	ready, err := Validate(opts, candidate)
	if err != nil {
		return err
	}
	sel := s.Selections.Set(p.ID, formPatch(opts, form, ready.DogName))
	return s.Cart.UpdateLine(index, p, sel)
}

// Total prices the cart against this session's catalog.
func (s *Session) Total() float64 {
	return s.Cart.Total(s.Lookup)
}

// candidate overlays the supported form fields on the stored selection.
func (s *Session) candidate(p *models.Product, form Form) models.Selection {
	sel := s.Selections.GetOrCreate(p.ID)
	opts := p.Opts()
	if opts.HasSizes() {
		sel.Size = form.Size
	}
	if opts.DogName {
		sel.DogName = strings.TrimSpace(form.DogName)
	}
	if opts.Note {
		sel.Note = strings.TrimSpace(form.Note)
	}
	if form.Color != "" {
		sel.Color = form.Color
	}
	return sel
}

func formPatch(opts models.ProductOptions, form Form, dogName string) SelectionPatch {
	var patch SelectionPatch
	if opts.HasSizes() {
		patch.Size = String(form.Size)
	}
	if opts.DogName {
		patch.DogName = String(dogName)
	}
	if opts.Note {
		patch.Note = String(strings.TrimSpace(form.Note))
	}
	if form.Color != "" {
		patch.Color = String(form.Color)
	}
	return patch
}
