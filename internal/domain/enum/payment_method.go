package enum

// PaymentMethod represents how an order was paid
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodCard PaymentMethod = "Card"
)

// Valid reports whether the payment method is one the system accepts
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
