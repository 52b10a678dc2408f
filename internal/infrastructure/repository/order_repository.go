package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/enum"
	domainRepo "github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
	"github.com/restopos/backoffice/pkg/utils"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// reserveOrderNumber bumps the day counter on the given connection and
// returns the reserved sequence value. The upsert takes a row lock on
// the date, so concurrent same-day commits serialize here; run inside a
// transaction, a rollback releases the number with the rest of it.
func reserveOrderNumber(tx *gorm.DB, orderedAt time.Time) (int64, error) {
	var lastValue int64
	err := tx.Raw(`
		INSERT INTO order_sequences (seq_date, last_value, updated_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (seq_date)
		DO UPDATE SET last_value = order_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value`,
		utils.OrderSequenceDate(orderedAt),
	).Scan(&lastValue).Error
	return lastValue, err
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	generated := order.OrderNumber == ""
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.OrderNumber == "" {
			seq, err := reserveOrderNumber(tx, order.OrderedAt)
			if err != nil {
				return err
			}
			order.OrderNumber = utils.FormatOrderNumber(order.OrderedAt, seq)
		}
		return tx.Create(order).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if generated {
			// The rollback released the reserved value, so a retry
			// would draw the same clashing number. Burn it with a
			// committed bump so the next reservation moves past the
			// row that holds it.
			if _, bumpErr := reserveOrderNumber(r.db.WithContext(ctx), order.OrderedAt); bumpErr != nil {
				return bumpErr
			}
		}
		return apperror.ErrDuplicateOrderNumber
	}
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Preload("Items").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("Order")
	}
	return &order, err
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("Order")
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if !params.IncludeVoided {
		query = query.Where("voided = ?", false)
	}

	if params.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+params.Search+"%")
	}

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.StartDate != nil {
		query = query.Where("ordered_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("ordered_at < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "ordered_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Cashier").
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("voided = ?", false).
		Where("ordered_at >= ? AND ordered_at < ?", start, end).
		Preload("Cashier").
		Order("ordered_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Void(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("voided", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Order")
	}
	return nil
}

func (r *orderRepository) DistinctPaymentMethods(ctx context.Context) ([]enum.PaymentMethod, error) {
	var methods []enum.PaymentMethod
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Distinct("payment_method").
		Order("payment_method ASC").
		Pluck("payment_method", &methods).Error
	return methods, err
}
