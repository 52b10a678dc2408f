package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
)

// MenuItemService handles menu item management
type MenuItemService struct {
	menuRepo     repository.MenuItemRepository
	categoryRepo repository.CategoryRepository
}

// NewMenuItemService creates a new menu item service
func NewMenuItemService(menuRepo repository.MenuItemRepository, categoryRepo repository.CategoryRepository) *MenuItemService {
	return &MenuItemService{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	CategoryID *uuid.UUID
	Name       string
	Price      float64
}

// CreateMenuItem creates a new menu item priced in whole cents
func (s *MenuItemService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if input.Price <= 0 {
		return nil, apperror.ErrInvalidPrice
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	item := &entity.MenuItem{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Active:     true,
	}
	item.SetPriceFromDecimal(input.Price)

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.menuRepo.GetByID(ctx, item.ID)
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuItemService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// ListMenuItems lists menu items, optionally filtered by category
func (s *MenuItemService) ListMenuItems(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]entity.MenuItem, error) {
	return s.menuRepo.List(ctx, categoryID, includeInactive)
}

// UpdateMenuItemInput represents the update menu item input
type UpdateMenuItemInput struct {
	CategoryID *uuid.UUID
	Name       *string
	Price      *float64
	Active     *bool
}

// UpdateMenuItem updates a menu item. Price changes never touch
// committed order lines, which keep their captured prices.
func (s *MenuItemService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		item.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperror.ErrInvalidPrice
		}
		item.SetPriceFromDecimal(*input.Price)
	}
	if input.Active != nil {
		item.Active = *input.Active
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.menuRepo.GetByID(ctx, item.ID)
}

// DeleteMenuItem soft deletes a menu item. Historical order lines keep
// the item's captured name and price.
func (s *MenuItemService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.menuRepo.Delete(ctx, id)
}
