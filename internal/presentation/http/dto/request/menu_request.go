package request

// CreateMenuItemRequest represents a create menu item request
type CreateMenuItemRequest struct {
	CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
	Name       string  `json:"name" binding:"required,min=1,max=255"`
	Price      float64 `json:"price" binding:"gt=0"`
}

// UpdateMenuItemRequest represents an update menu item request
type UpdateMenuItemRequest struct {
	CategoryID *string  `json:"category_id" binding:"omitempty,uuid"`
	Name       *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Price      *float64 `json:"price" binding:"omitempty,gt=0"`
	Active     *bool    `json:"active"`
}

// CreateCategoryRequest represents a create category request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// UpdateCategoryRequest represents an update category request
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}
