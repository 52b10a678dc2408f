package request

// CheckoutRequest represents a request to commit the current cart
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}
