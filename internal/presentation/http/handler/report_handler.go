package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restopos/backoffice/internal/application/service"
	"github.com/restopos/backoffice/internal/presentation/http/dto/response"
	"github.com/restopos/backoffice/pkg/pagination"
)

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily returns one report per calendar day in the requested range,
// newest first, paged in memory. Defaults to the last 30 days.
func (h *ReportHandler) Daily(c *gin.Context) {
	now := time.Now()
	start, end := dateRangeFromQuery(c, now.AddDate(0, 0, -30), now)

	reports, err := h.reportService.DailyReports(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.Slice(reports, paginationFromQuery(c))
	response.SuccessWithPagination(c, 200, "Daily reports retrieved successfully", result)
}

// Weekly returns one report per week bucket with orders in the requested
// range. Defaults to the last four weeks.
func (h *ReportHandler) Weekly(c *gin.Context) {
	now := time.Now()
	start, end := dateRangeFromQuery(c, now.AddDate(0, 0, -28), now)

	reports, err := h.reportService.WeeklyReports(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.Slice(reports, paginationFromQuery(c))
	response.SuccessWithPagination(c, 200, "Weekly reports retrieved successfully", result)
}

// Monthly returns either one explicit month (?year=2024&month=1) or one
// report per month of a date range. An explicit month with no orders
// still returns a zero-total report.
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(c, "Invalid year")
			return
		}
		month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
		if err != nil {
			response.BadRequest(c, "Invalid month")
			return
		}

		report, err := h.reportService.MonthlyReport(c.Request.Context(), year, time.Month(month))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Monthly report retrieved successfully", report)
		return
	}

	start, end := dateRangeFromQuery(c, now.AddDate(0, -5, 0), now)
	reports, err := h.reportService.MonthlyRangeReports(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.Slice(reports, paginationFromQuery(c))
	response.SuccessWithPagination(c, 200, "Monthly reports retrieved successfully", result)
}
