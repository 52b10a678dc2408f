package request

// AddCartItemRequest represents a request to add a menu item to the cart
type AddCartItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest represents a request to change a cart line's
// quantity. A pointer so an explicit 0, which removes the line, still
// passes the required check.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetCartPriceRequest represents a per-line price override in currency units
type SetCartPriceRequest struct {
	Price float64 `json:"price" binding:"gte=0"`
}
