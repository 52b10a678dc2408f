package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/application/service"
	"github.com/restopos/backoffice/internal/presentation/http/dto/request"
	"github.com/restopos/backoffice/internal/presentation/http/dto/response"
)

// CartHandler handles cart-related HTTP requests. Every mutation returns
// the full cart snapshot so the terminal can redraw its running total.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the operator's current cart
func (h *CartHandler) Get(c *gin.Context) {
	snapshot, err := h.cartService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", snapshot)
}

// AddItem adds a menu item to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	snapshot, err := h.cartService.AddItem(c.Request.Context(), menuItemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", snapshot)
}

// UpdateItem changes a cart line's quantity; zero or less removes it
func (h *CartHandler) UpdateItem(c *gin.Context) {
	menuItemID, err := uuid.Parse(c.Param("menu_item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	snapshot, err := h.cartService.SetQuantity(c.Request.Context(), menuItemID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated", snapshot)
}

// SetPrice overrides a cart line's unit price
func (h *CartHandler) SetPrice(c *gin.Context) {
	menuItemID, err := uuid.Parse(c.Param("menu_item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req request.SetCartPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	priceCents := int64(req.Price*100 + 0.5)
	snapshot, err := h.cartService.SetPrice(c.Request.Context(), menuItemID, priceCents)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart updated", snapshot)
}

// RemoveItem removes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	menuItemID, err := uuid.Parse(c.Param("menu_item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	snapshot, err := h.cartService.RemoveItem(c.Request.Context(), menuItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from cart", snapshot)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	snapshot, err := h.cartService.Clear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", snapshot)
}
