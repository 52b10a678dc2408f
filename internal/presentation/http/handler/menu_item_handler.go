package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/application/service"
	"github.com/restopos/backoffice/internal/presentation/http/dto/request"
	"github.com/restopos/backoffice/internal/presentation/http/dto/response"
)

// MenuItemHandler handles menu item HTTP requests
type MenuItemHandler struct {
	menuItemService *service.MenuItemService
}

// NewMenuItemHandler creates a new menu item handler
func NewMenuItemHandler(menuItemService *service.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{menuItemService: menuItemService}
}

// Create creates a new menu item
func (h *MenuItemHandler) Create(c *gin.Context) {
	var req request.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateMenuItemInput{
		Name:  req.Name,
		Price: req.Price,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &categoryID
	}

	item, err := h.menuItemService.CreateMenuItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Menu item created successfully", item)
}

// List lists menu items, optionally filtered by category
func (h *MenuItemHandler) List(c *gin.Context) {
	var categoryID *uuid.UUID
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		id, err := uuid.Parse(categoryIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		categoryID = &id
	}
	includeInactive := c.Query("include_inactive") == "true"

	items, err := h.menuItemService.ListMenuItems(c.Request.Context(), categoryID, includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu items retrieved successfully", items)
}

// Get retrieves a menu item by ID
func (h *MenuItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	item, err := h.menuItemService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item retrieved successfully", item)
}

// Update updates a menu item
func (h *MenuItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req request.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateMenuItemInput{
		Name:   req.Name,
		Price:  req.Price,
		Active: req.Active,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &categoryID
	}

	item, err := h.menuItemService.UpdateMenuItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item updated successfully", item)
}

// Delete soft deletes a menu item
func (h *MenuItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menuItemService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
