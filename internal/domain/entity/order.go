package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a committed sale. Orders are never physically deleted;
// a cancelled sale is marked voided instead.
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber   string             `gorm:"size:50;unique;not null" json:"order_number"`
	OrderedAt     time.Time          `gorm:"not null;index" json:"ordered_at"`
	TotalAmount   int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod enum.PaymentMethod `gorm:"size:50;not null" json:"payment_method"`
	CashierID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	Voided        bool               `gorm:"default:false" json:"voided"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Cashier User        `gorm:"foreignKey:CashierID" json:"-"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		CashierName string  `json:"cashier_name,omitempty"`
	}{
		Alias:       Alias(o),
		TotalAmount: float64(o.TotalAmount) / 100,
		CashierName: o.Cashier.Username,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ItemsTotal returns the sum of the line totals. An order is consistent
// when this equals TotalAmount.
func (o *Order) ItemsTotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.TotalPrice
	}
	return sum
}

// OrderItem represents a line item in a committed order. Immutable after
// commit; UnitPrice is the price actually charged, which may differ from
// the current menu price.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TotalPrice int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(i),
		UnitPrice:  float64(i.UnitPrice) / 100,
		TotalPrice: float64(i.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderSequence is the per-day order number counter. The row for a date is
// bumped atomically inside the commit transaction, so concurrent same-day
// commits serialize on the row lock and a rolled-back commit releases its
// number.
type OrderSequence struct {
	SeqDate   string    `gorm:"size:8;primary_key" json:"seq_date"` // YYYYMMDD
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the OrderSequence model
func (OrderSequence) TableName() string {
	return "order_sequences"
}
