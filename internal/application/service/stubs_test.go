package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
	"github.com/restopos/backoffice/pkg/utils"
)

// stubOrderRepo is an in-memory OrderRepository with the same contract
// as the real store: a failed Create persists nothing, but a duplicate
// number burns the day's sequence value so the retry draws the next one.
type stubOrderRepo struct {
	mu     sync.Mutex
	orders []entity.Order
	seqs   map[string]int64

	// failCreates makes the next N Create calls fail with a duplicate
	// order number
	failCreates int
	createCalls int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{seqs: make(map[string]int64)}
}

func (r *stubOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.failCreates > 0 {
		r.failCreates--
		if order.OrderNumber == "" {
			// A duplicate burns the reserved value, leaving a gap
			r.seqs[utils.OrderSequenceDate(order.OrderedAt)]++
		}
		return apperror.ErrDuplicateOrderNumber
	}

	if order.OrderNumber == "" {
		key := utils.OrderSequenceDate(order.OrderedAt)
		order.OrderNumber = utils.FormatOrderNumber(order.OrderedAt, r.seqs[key]+1)
		r.seqs[key]++
	}
	for _, existing := range r.orders {
		if existing.OrderNumber == order.OrderNumber {
			return apperror.ErrDuplicateOrderNumber
		}
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}

	r.orders = append(r.orders, *order)
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			order := r.orders[i]
			return &order, nil
		}
	}
	return nil, apperror.NewNotFoundError("Order")
}

func (r *stubOrderRepo) GetByOrderNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].OrderNumber == orderNumber {
			order := r.orders[i]
			return &order, nil
		}
	}
	return nil, apperror.NewNotFoundError("Order")
}

func (r *stubOrderRepo) List(_ context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []entity.Order
	for _, o := range r.orders {
		if o.Voided && !params.IncludeVoided {
			continue
		}
		matched = append(matched, o)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubOrderRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []entity.Order
	for _, o := range r.orders {
		if o.Voided {
			continue
		}
		if o.OrderedAt.Before(start) || !o.OrderedAt.Before(end) {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].OrderedAt.Before(matched[j].OrderedAt)
	})
	return matched, nil
}

func (r *stubOrderRepo) Void(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Voided = true
			return nil
		}
	}
	return apperror.NewNotFoundError("Order")
}

func (r *stubOrderRepo) DistinctPaymentMethods(_ context.Context) ([]enum.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[enum.PaymentMethod]bool)
	var methods []enum.PaymentMethod
	for _, o := range r.orders {
		if !seen[o.PaymentMethod] {
			seen[o.PaymentMethod] = true
			methods = append(methods, o.PaymentMethod)
		}
	}
	return methods, nil
}

// stubMenuRepo is an in-memory MenuItemRepository
type stubMenuRepo struct {
	items map[uuid.UUID]entity.MenuItem
}

func newStubMenuRepo(items ...entity.MenuItem) *stubMenuRepo {
	r := &stubMenuRepo{items: make(map[uuid.UUID]entity.MenuItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *stubMenuRepo) Create(_ context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *stubMenuRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *stubMenuRepo) Update(_ context.Context, item *entity.MenuItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubMenuRepo) List(_ context.Context, categoryID *uuid.UUID, includeInactive bool) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	for _, item := range r.items {
		if categoryID != nil && (item.CategoryID == nil || *item.CategoryID != *categoryID) {
			continue
		}
		if !includeInactive && !item.Active {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// stubCategoryRepo is an in-memory CategoryRepository
type stubCategoryRepo struct {
	categories map[uuid.UUID]entity.Category
}

func newStubCategoryRepo(categories ...entity.Category) *stubCategoryRepo {
	r := &stubCategoryRepo{categories: make(map[uuid.UUID]entity.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *stubCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *stubCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &category, nil
}

func (r *stubCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = *category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func menuItem(name string, priceCents int64) entity.MenuItem {
	return entity.MenuItem{
		ID:     uuid.New(),
		Name:   name,
		Price:  priceCents,
		Active: true,
	}
}

func adminCtx() (context.Context, Operator) {
	op := Operator{ID: uuid.New(), Username: "admin", Role: enum.RoleAdmin}
	return WithOperator(context.Background(), op), op
}

func cashierCtx(username string) (context.Context, Operator) {
	op := Operator{ID: uuid.New(), Username: username, Role: enum.RoleCashier}
	return WithOperator(context.Background(), op), op
}

// testCashierIDs keeps cashier ids stable per username so repeated
// committedOrder calls land in one cashier bucket, like rows sharing a
// users foreign key would.
var testCashierIDs = make(map[string]uuid.UUID)

func testCashierID(username string) uuid.UUID {
	id, ok := testCashierIDs[username]
	if !ok {
		id = uuid.New()
		testCashierIDs[username] = id
	}
	return id
}

// committedOrder builds a persisted order directly, bypassing the cart
func committedOrder(repo *stubOrderRepo, orderedAt time.Time, amountCents int64, method enum.PaymentMethod, cashier string) entity.Order {
	id := testCashierID(cashier)
	order := entity.Order{
		OrderedAt:     orderedAt,
		TotalAmount:   amountCents,
		PaymentMethod: method,
		CashierID:     id,
		Cashier:       entity.User{ID: id, Username: cashier},
	}
	if err := repo.Create(context.Background(), &order); err != nil {
		panic(err)
	}
	return order
}
