package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	domainRepo "github.com/restopos/backoffice/internal/domain/repository"
	"gorm.io/gorm"
)

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository
func NewMenuItemRepository(db *gorm.DB) domainRepo.MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuItemRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

func (r *menuItemRepository) List(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]entity.MenuItem, error) {
	var items []entity.MenuItem

	query := r.db.WithContext(ctx).Model(&entity.MenuItem{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	err := query.
		Preload("Category").
		Order("name ASC").
		Find(&items).Error
	return items, err
}
