package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
	"github.com/restopos/backoffice/pkg/utils"
)

// commitAttempts bounds the retry loop around order number reservation.
// Conflicts only happen against rows inserted out of band with a number
// the counter has not reached yet; the store burns the clashing value on
// each conflict, so every retry draws a fresh number.
const commitAttempts = 3

// OrderService turns carts into durable orders and answers order lookups
type OrderService struct {
	orderRepo repository.OrderRepository
	carts     *CartStore

	// now is swappable for tests
	now func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository, carts *CartStore) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		carts:     carts,
		now:       time.Now,
	}
}

// Checkout commits the operator's cart as a new order. The order, its
// items and the day sequence bump persist atomically; on any failure the
// cart is left untouched so the operator can retry.
func (s *OrderService) Checkout(ctx context.Context, paymentMethod enum.PaymentMethod) (*entity.Order, error) {
	op, ok := OperatorFromContext(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	if !paymentMethod.Valid() {
		return nil, apperror.ErrInvalidPaymentMethod
	}

	cart := s.carts.Get(op.ID)
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	orderedAt := s.now()
	order := &entity.Order{
		OrderedAt:     orderedAt,
		PaymentMethod: paymentMethod,
		CashierID:     op.ID,
		Items:         make([]entity.OrderItem, 0, len(lines)),
	}
	for _, l := range lines {
		order.TotalAmount += l.TotalPrice()
		order.Items = append(order.Items, entity.OrderItem{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice(),
		})
	}

	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		order.ID = uuid.Nil
		order.OrderNumber = ""
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			cart.Clear()
			return order, nil
		}
		if !errors.Is(err, apperror.ErrDuplicateOrderNumber) {
			return nil, err
		}
		log.Printf("order number collision on attempt %d, retrying", attempt)
	}
	return nil, err
}

// GetOrder fetches a single order with items and cashier resolved
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// GetByOrderNumber looks up an order by its number. Both the
// date-sequence format and the legacy ORD- format are accepted.
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	if !utils.IsLegacyOrderNumber(orderNumber) {
		if _, _, err := utils.ParseOrderNumber(orderNumber); err != nil {
			return nil, apperror.NewBadRequestError("Invalid order number")
		}
	}
	return s.orderRepo.GetByOrderNumber(ctx, orderNumber)
}

// ListOrders returns one page of orders matching the filter
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// VoidOrder cancels an order. Admin only, one-way; voided orders stay on
// record but leave every sales aggregate.
func (s *OrderService) VoidOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	op, ok := OperatorFromContext(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	if !op.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Voided {
		return nil, apperror.ErrOrderAlreadyVoided
	}

	if err := s.orderRepo.Void(ctx, id); err != nil {
		return nil, err
	}
	order.Voided = true
	return order, nil
}

// PaymentMethods returns the payment methods seen across all orders
func (s *OrderService) PaymentMethods(ctx context.Context) ([]enum.PaymentMethod, error) {
	return s.orderRepo.DistinctPaymentMethods(ctx)
}
