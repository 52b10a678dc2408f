package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/application/service"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/internal/presentation/http/dto/request"
	"github.com/restopos/backoffice/internal/presentation/http/dto/response"
	"github.com/restopos/backoffice/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout commits the operator's cart as a new order
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), enum.PaymentMethod(req.PaymentMethod))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order committed successfully", order)
}

// List handles listing orders with filters and page-based pagination
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination:    paginationFromQuery(c),
		Search:        c.Query("search"),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
		IncludeVoided: c.Query("include_voided") == "true",
	}

	if cashierIDStr := c.Query("cashier_id"); cashierIDStr != "" {
		if cashierID, err := uuid.Parse(cashierIDStr); err == nil {
			params.CashierID = &cashierID
		}
	}

	if methodStr := c.Query("payment_method"); methodStr != "" {
		method := enum.PaymentMethod(methodStr)
		params.PaymentMethod = &method
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.ParseInLocation(dateLayout, startDateStr, time.Local); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.ParseInLocation(dateLayout, endDateStr, time.Local); err == nil {
			// Make the query's end date inclusive
			exclusive := endDate.AddDate(0, 0, 1)
			params.EndDate = &exclusive
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get retrieves an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// GetByNumber retrieves an order by its order number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// Void cancels an order
func (h *OrderHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.VoidOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order voided successfully", order)
}

// PaymentMethods lists the payment methods observed across all orders
func (h *OrderHandler) PaymentMethods(c *gin.Context) {
	methods, err := h.orderService.PaymentMethods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment methods retrieved successfully", methods)
}
