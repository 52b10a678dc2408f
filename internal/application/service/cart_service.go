package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
)

// CartService mediates cart mutations for the authenticated operator.
// Menu prices are resolved server-side at add time so a stale client
// cannot commit an outdated price.
type CartService struct {
	carts    *CartStore
	menuRepo repository.MenuItemRepository
}

func NewCartService(carts *CartStore, menuRepo repository.MenuItemRepository) *CartService {
	return &CartService{
		carts:    carts,
		menuRepo: menuRepo,
	}
}

func (s *CartService) cartFor(ctx context.Context) (*Cart, error) {
	op, ok := OperatorFromContext(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	return s.carts.Get(op.ID), nil
}

// AddItem adds quantity of a menu item to the operator's cart at the
// item's current price. Inactive items cannot be added.
func (s *CartService) AddItem(ctx context.Context, menuItemID uuid.UUID, quantity int) (*CartSnapshot, error) {
	cart, err := s.cartFor(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.menuRepo.GetByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	if !item.Active {
		return nil, apperror.ErrMenuItemInactive
	}

	if err := cart.AddLine(item, quantity); err != nil {
		return nil, err
	}
	return cart.Snapshot(), nil
}

// RemoveItem removes the line for the menu item from the operator's cart
func (s *CartService) RemoveItem(ctx context.Context, menuItemID uuid.UUID) (*CartSnapshot, error) {
	cart, err := s.cartFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveLine(menuItemID); err != nil {
		return nil, err
	}
	return cart.Snapshot(), nil
}

// SetQuantity updates a line's quantity; zero or negative removes the line
func (s *CartService) SetQuantity(ctx context.Context, menuItemID uuid.UUID, quantity int) (*CartSnapshot, error) {
	cart, err := s.cartFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(menuItemID, quantity); err != nil {
		return nil, err
	}
	return cart.Snapshot(), nil
}

// SetPrice applies a per-line price override in cents
func (s *CartService) SetPrice(ctx context.Context, menuItemID uuid.UUID, priceCents int64) (*CartSnapshot, error) {
	cart, err := s.cartFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := cart.SetPrice(menuItemID, priceCents); err != nil {
		return nil, err
	}
	return cart.Snapshot(), nil
}

// Clear empties the operator's cart
func (s *CartService) Clear(ctx context.Context) (*CartSnapshot, error) {
	cart, err := s.cartFor(ctx)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return cart.Snapshot(), nil
}

// Drop discards the operator's cart entirely, used on logout
func (s *CartService) Drop(ctx context.Context) error {
	op, ok := OperatorFromContext(ctx)
	if !ok {
		return apperror.ErrUnauthorized
	}
	s.carts.Drop(op.ID)
	return nil
}

// Get returns the operator's current cart state
func (s *CartService) Get(ctx context.Context) (*CartSnapshot, error) {
	cart, err := s.cartFor(ctx)
	if err != nil {
		return nil, err
	}
	return cart.Snapshot(), nil
}
