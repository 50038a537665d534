package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-server/cart"
	"storefront-server/localstore"
	"storefront-server/models"
)

func newSession(t *testing.T) *cart.Session {
	t.Helper()
	return cart.NewSession(catalog(), cart.Load(localstore.NewMemoryStore(), nil))
}

func TestSession_ProductResolvesSlug(t *testing.T) {
	s := newSession(t)

	p, ok := s.Product("gratitude-mug")
	require.True(t, ok)
	assert.Equal(t, "mug-002", p.ID)

	_, ok = s.Product("  ")
	assert.False(t, ok)
	_, ok = s.Lookup("gratitude-mug")
	assert.False(t, ok)
}

func TestSession_DisplayAdoptsDefaultColor(t *testing.T) {
	s := newSession(t)

	sel, err := s.Display("bandana-001")
	require.NoError(t, err)
	assert.Equal(t, "forest", sel.Color)

	_, err = s.Display("nope")
	assert.ErrorIs(t, err, cart.ErrProductNotFound)
}

func TestSession_QuickAddNeedsConfiguration(t *testing.T) {
	s := newSession(t)

	_, err := s.QuickAdd("bandana-001")
	assert.ErrorIs(t, err, cart.ErrSizeRequired)
	assert.Equal(t, 0, s.Cart.Len())

	_, err = s.SaveSelection("bandana-001", cart.Form{Size: "S"})
	require.NoError(t, err)
	_, err = s.QuickAdd("bandana-001")
	assert.ErrorIs(t, err, cart.ErrNameRequired)

	_, err = s.SaveSelection("bandana-001", cart.Form{Size: "S", DogName: "  NONE "})
	require.NoError(t, err)
	_, err = s.QuickAdd("bandana-001")
	require.NoError(t, err)

	line, _ := s.Cart.Line(0)
	assert.Equal(t, models.LineItem{ProductID: "bandana-001", Quantity: 1, Size: "S", DogName: "none", Color: "forest"}, line)
	assert.Equal(t, "none", s.Selections.GetOrCreate("bandana-001").DogName)
}

func TestSession_QuickAddPlainProduct(t *testing.T) {
	s := newSession(t)

	_, err := s.QuickAdd("mug-002")
	require.NoError(t, err)
	_, err = s.QuickAdd("mug-002")
	require.NoError(t, err)

	assert.Equal(t, 1, s.Cart.Len())
	assert.Equal(t, 2, s.Cart.Count())
	assert.InDelta(t, 18.0, s.Total(), 1e-9)

	_, err = s.QuickAdd("missing")
	assert.ErrorIs(t, err, cart.ErrProductNotFound)
}

func TestSession_QuickViewAdd(t *testing.T) {
	s := newSession(t)

	_, err := s.QuickViewAdd("bandana-001", cart.Form{Size: "m", DogName: ""})
	assert.ErrorIs(t, err, cart.ErrNameRequired)
	assert.Equal(t, 0, s.Cart.Len())
	assert.Equal(t, "", s.Selections.GetOrCreate("bandana-001").Size, "failed add leaves the selection alone")

	_, err = s.QuickViewAdd("bandana-001", cart.Form{Size: "m", DogName: "Sir Barksalot the Third", Note: "  hi  "})
	require.NoError(t, err)

	line, _ := s.Cart.Line(0)
	assert.Equal(t, "Sir Barksalot t", line.DogName)
	assert.Equal(t, "hi", line.Note)
	assert.Equal(t, "forest", line.Color)
	assert.Equal(t, "Sir Barksalot t", s.Selections.GetOrCreate("bandana-001").DogName)
}

func TestSession_PageAdd(t *testing.T) {
	s := newSession(t)

	_, err := s.PageAdd("bandana-001", cart.Form{DogName: "Rex"})
	assert.ErrorIs(t, err, cart.ErrSizeRequired)

	_, err = s.PageAdd("bandana-001", cart.Form{Size: "S", DogName: "Rex", Color: "rust"})
	require.NoError(t, err)
	_, err = s.PageAdd("bandana-001", cart.Form{Size: "S", DogName: " Rex", Color: "rust"})
	require.NoError(t, err)

	require.Equal(t, 1, s.Cart.Len())
	line, _ := s.Cart.Line(0)
	assert.Equal(t, 2, line.Quantity)
	assert.False(t, s.Selections.Exists("bandana-001"))

	_, err = s.PageAdd("gratitude-mug", cart.Form{Size: "XL", Note: "ignored"})
	require.NoError(t, err)
	line, _ = s.Cart.Line(1)
	assert.Equal(t, models.LineItem{ProductID: "mug-002", Quantity: 1}, line)
}

func TestSession_ThreeCallSitesNormalizeAlike(t *testing.T) {
	form := cart.Form{Size: "S", DogName: "  bLaNk ", Color: "forest"}

	quick := newSession(t)
	_, err := quick.QuickViewAdd("bandana-001", form)
	require.NoError(t, err)

	page := newSession(t)
	_, err = page.PageAdd("bandana-001", form)
	require.NoError(t, err)

	edit := newSession(t)
	_, err = edit.PageAdd("bandana-001", cart.Form{Size: "m", DogName: "Rex"})
	require.NoError(t, err)
	require.NoError(t, edit.UpdateLine(0, form))

	a, _ := quick.Cart.Line(0)
	b, _ := page.Cart.Line(0)
	c, _ := edit.Cart.Line(0)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, "none", a.DogName)
}

func TestSession_EditFlow(t *testing.T) {
	s := newSession(t)
	_, err := s.PageAdd("bandana-001", cart.Form{Size: "S", DogName: "Rex", Color: "rust"})
	require.NoError(t, err)
	require.NoError(t, s.Cart.ChangeQuantity(0, 2))

	sel, err := s.BeginEdit(0)
	require.NoError(t, err)
	assert.Equal(t, models.Selection{Size: "S", DogName: "Rex", Color: "rust"}, sel)

	err = s.UpdateLine(0, cart.Form{Size: "", DogName: "Rex"})
	assert.ErrorIs(t, err, cart.ErrSizeRequired)

	require.NoError(t, s.UpdateLine(0, cart.Form{Size: "m", DogName: "Bo", Note: "extra soft"}))
	line, _ := s.Cart.Line(0)
	assert.Equal(t, models.LineItem{ProductID: "bandana-001", Quantity: 3, Size: "m", DogName: "Bo", Note: "extra soft", Color: "rust"}, line)

	_, err = s.BeginEdit(4)
	assert.ErrorIs(t, err, cart.ErrLineNotFound)
	assert.ErrorIs(t, s.UpdateLine(4, cart.Form{}), cart.ErrLineNotFound)
}

func TestSession_EditOfRetiredProduct(t *testing.T) {
	store := localstore.NewMemoryStore()
	require.NoError(t, store.SetItem(cart.StorageKey, `[{"id":"retired","quantity":1,"size":"","dogName":"","note":"","color":""}]`))
	s := cart.NewSession(catalog(), cart.Load(store, nil))

	_, err := s.BeginEdit(0)
	assert.ErrorIs(t, err, cart.ErrProductNotFound)
	assert.ErrorIs(t, s.UpdateLine(0, cart.Form{}), cart.ErrProductNotFound)
}
