package entity

// CartItem is a product line in the cart. Identity is the
// (ID, SelectedSize, SelectedColor) tuple.
type CartItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// Matches reports whether the item has the given identity tuple.
func (c CartItem) Matches(productID int64, size, color string) bool {
	return c.ID == productID && c.SelectedSize == size && c.SelectedColor == color
}

// LineTotal is price times quantity.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}
