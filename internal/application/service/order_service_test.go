package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
	"github.com/restopos/backoffice/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCheckoutRequiresOperator(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), NewCartStore())

	_, err := svc.Checkout(context.Background(), enum.PaymentMethodCash)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), NewCartStore())

	ctx, _ := cashierCtx("jane")
	_, err := svc.Checkout(ctx, enum.PaymentMethodCash)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), NewCartStore())

	ctx, _ := cashierCtx("jane")
	_, err := svc.Checkout(ctx, enum.PaymentMethod("Barter"))
	assert.ErrorIs(t, err, apperror.ErrInvalidPaymentMethod)
}

func TestCheckoutCommitsCartAtomically(t *testing.T) {
	repo := newStubOrderRepo()
	carts := NewCartStore()
	svc := NewOrderService(repo, carts)
	svc.now = fixedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))

	ctx, op := cashierCtx("jane")
	cart := carts.Get(op.ID)
	coffee := menuItem("Coffee", 350)
	cake := menuItem("Cake", 525)
	require.NoError(t, cart.AddLine(&coffee, 2))
	require.NoError(t, cart.AddLine(&cake, 1))

	order, err := svc.Checkout(ctx, enum.PaymentMethodCard)
	require.NoError(t, err)

	assert.Equal(t, "20240101-1", order.OrderNumber)
	assert.Equal(t, int64(350*2+525), order.TotalAmount)
	assert.Equal(t, order.TotalAmount, order.ItemsTotal())
	assert.Equal(t, enum.PaymentMethodCard, order.PaymentMethod)
	assert.Equal(t, op.ID, order.CashierID)
	require.Len(t, order.Items, 2)

	// Cart is cleared only after a successful commit
	assert.Equal(t, 0, cart.Len())

	persisted, err := repo.GetByOrderNumber(ctx, "20240101-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, persisted.ID)
}

func TestCheckoutNumbersOrdersWithinDay(t *testing.T) {
	repo := newStubOrderRepo()
	carts := NewCartStore()
	svc := NewOrderService(repo, carts)
	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	svc.now = fixedClock(day)

	ctx, op := cashierCtx("jane")
	coffee := menuItem("Coffee", 350)

	for i := 0; i < 3; i++ {
		require.NoError(t, carts.Get(op.ID).AddLine(&coffee, 1))
		_, err := svc.Checkout(ctx, enum.PaymentMethodCash)
		require.NoError(t, err)
	}

	require.NoError(t, carts.Get(op.ID).AddLine(&coffee, 1))
	order, err := svc.Checkout(ctx, enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, "20240101-4", order.OrderNumber)

	// A new day restarts the sequence
	svc.now = fixedClock(day.AddDate(0, 0, 1))
	require.NoError(t, carts.Get(op.ID).AddLine(&coffee, 1))
	order, err = svc.Checkout(ctx, enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, "20240102-1", order.OrderNumber)
}

func TestCheckoutRetriesDuplicateNumbers(t *testing.T) {
	repo := newStubOrderRepo()
	repo.failCreates = 2
	carts := NewCartStore()
	svc := NewOrderService(repo, carts)
	svc.now = fixedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))

	ctx, op := cashierCtx("jane")
	coffee := menuItem("Coffee", 350)
	require.NoError(t, carts.Get(op.ID).AddLine(&coffee, 1))

	order, err := svc.Checkout(ctx, enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.createCalls)
	// The two burned values leave a gap, never a reused number
	assert.Equal(t, "20240101-3", order.OrderNumber)
}

func TestCheckoutSkipsNumbersHeldByExistingRows(t *testing.T) {
	repo := newStubOrderRepo()
	// A row inserted out of band already holds the day's first number
	repo.orders = append(repo.orders, entity.Order{
		ID:          uuid.New(),
		OrderNumber: "20240101-1",
		OrderedAt:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local),
	})

	carts := NewCartStore()
	svc := NewOrderService(repo, carts)
	svc.now = fixedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))

	ctx, op := cashierCtx("jane")
	coffee := menuItem("Coffee", 350)
	require.NoError(t, carts.Get(op.ID).AddLine(&coffee, 1))

	order, err := svc.Checkout(ctx, enum.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, "20240101-2", order.OrderNumber)
	assert.Equal(t, 2, repo.createCalls)
}

func TestConcurrentSameDayCheckoutsGetDistinctNumbers(t *testing.T) {
	const commits = 16

	repo := newStubOrderRepo()
	carts := NewCartStore()
	svc := NewOrderService(repo, carts)
	svc.now = fixedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))

	coffee := menuItem("Coffee", 350)
	numbers := make(chan string, commits)
	var wg sync.WaitGroup
	for i := 0; i < commits; i++ {
		ctx, op := cashierCtx(fmt.Sprintf("cashier-%d", i))
		require.NoError(t, carts.Get(op.ID).AddLine(&coffee, 1))
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := svc.Checkout(ctx, enum.PaymentMethodCash)
			if assert.NoError(t, err) {
				numbers <- order.OrderNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for n := range numbers {
		assert.False(t, seen[n], "order number %s handed out twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, commits)
}

func TestCheckoutGivesUpAfterBoundedRetries(t *testing.T) {
	repo := newStubOrderRepo()
	repo.failCreates = commitAttempts
	carts := NewCartStore()
	svc := NewOrderService(repo, carts)

	ctx, op := cashierCtx("jane")
	cart := carts.Get(op.ID)
	coffee := menuItem("Coffee", 350)
	require.NoError(t, cart.AddLine(&coffee, 1))

	_, err := svc.Checkout(ctx, enum.PaymentMethodCash)
	assert.ErrorIs(t, err, apperror.ErrDuplicateOrderNumber)
	assert.Equal(t, commitAttempts, repo.createCalls)

	// A failed commit leaves the cart intact for another attempt
	assert.Equal(t, 1, cart.Len())
}

func TestGetByOrderNumberAcceptsLegacyFormat(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, NewCartStore())

	legacy := committedOrder(repo, time.Now(), 1000, enum.PaymentMethodCash, "jane")
	legacy.OrderNumber = "ORD-20231224183000-0042"
	repo.orders[0].OrderNumber = legacy.OrderNumber

	ctx := context.Background()
	found, err := svc.GetByOrderNumber(ctx, "ORD-20231224183000-0042")
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, found.ID)

	_, err = svc.GetByOrderNumber(ctx, "not-a-number")
	assert.Error(t, err)
}

func TestVoidOrderIsAdminOnlyAndOneWay(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, NewCartStore())

	order := committedOrder(repo, time.Now(), 1000, enum.PaymentMethodCash, "jane")

	cashier, _ := cashierCtx("jane")
	_, err := svc.VoidOrder(cashier, order.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	admin, _ := adminCtx()
	voided, err := svc.VoidOrder(admin, order.ID)
	require.NoError(t, err)
	assert.True(t, voided.Voided)

	_, err = svc.VoidOrder(admin, order.ID)
	assert.ErrorIs(t, err, apperror.ErrOrderAlreadyVoided)
}

func TestListOrdersHidesVoidedByDefault(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, NewCartStore())

	kept := committedOrder(repo, time.Now(), 1000, enum.PaymentMethodCash, "jane")
	gone := committedOrder(repo, time.Now(), 2000, enum.PaymentMethodCard, "jane")
	require.NoError(t, repo.Void(context.Background(), gone.ID))

	ctx, _ := cashierCtx("jane")
	orders, total, err := svc.ListOrders(ctx, &repository.OrderFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, kept.ID, orders[0].ID)

	orders, total, err = svc.ListOrders(ctx, &repository.OrderFilterParams{
		Pagination:    pagination.DefaultPagination(),
		IncludeVoided: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
}
