package models

// LineItem is one cart entry: a product plus the options it was committed
// with. The JSON shape matches what the storefront keeps in local storage and
// posts to the checkout endpoint.
type LineItem struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	DogName   string `json:"dogName"`
	Note      string `json:"note"`
	Color     string `json:"color"`
}

// SameLine reports whether two line items share an identity: same product and
// the same four option values. Empty strings compare like any other value.
func (li LineItem) SameLine(other LineItem) bool {
	return li.ProductID == other.ProductID &&
		li.Size == other.Size &&
		li.DogName == other.DogName &&
		li.Note == other.Note &&
		li.Color == other.Color
}

// Selection is the option set a shopper is building for a product before it
// is committed to the cart.
type Selection struct {
	Color   string `json:"color"`
	Size    string `json:"size"`
	DogName string `json:"dogName"`
	Note    string `json:"note"`
}

// Line builds the cart line this selection would commit for productID.
func (s Selection) Line(productID string, quantity int) LineItem {
	return LineItem{
		ProductID: productID,
		Quantity:  quantity,
		Size:      s.Size,
		DogName:   s.DogName,
		Note:      s.Note,
		Color:     s.Color,
	}
}
