package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/restopos/backoffice/pkg/pagination"
)

// OrderRepository defines the store surface the commit and aggregation
// engine consumes.
type OrderRepository interface {
	// Create persists the order and its items as one atomic unit. When
	// order.OrderNumber is empty it reserves the next number for the
	// order's calendar day inside the same transaction. A duplicate
	// order number surfaces as apperror.ErrDuplicateOrderNumber with
	// nothing persisted.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetByOrderNumber accepts both the date-sequence format and the
	// legacy ORD-<timestamp>-<random> format.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	// List applies the filter predicates store-side and returns one
	// offset/limit page plus the total match count.
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListByDateRange returns all non-voided orders with start <= OrderedAt
	// < end, cashier resolved, ordered by OrderedAt ascending. The
	// aggregation engine's sole read path.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Order, error)
	// Void marks the order cancelled. One-way; voided orders are never
	// un-voided or deleted.
	Void(ctx context.Context, id uuid.UUID) error
	// DistinctPaymentMethods returns the payment methods observed across
	// all orders.
	DistinctPaymentMethods(ctx context.Context) ([]enum.PaymentMethod, error)
}

// OrderFilterParams contains filtering parameters for order listing queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	CashierID     *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	IncludeVoided bool
	SortBy        string
	SortOrder     string
}
