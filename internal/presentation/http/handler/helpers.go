package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restopos/backoffice/internal/application/service"
	"github.com/restopos/backoffice/pkg/pagination"
)

const dateLayout = "2006-01-02"

// GetOperator extracts the authenticated operator from the Gin context
func GetOperator(c *gin.Context) (service.Operator, bool) {
	opVal, exists := c.Get("operator")
	if !exists {
		return service.Operator{}, false
	}
	op, ok := opVal.(service.Operator)
	return op, ok
}

// paginationFromQuery reads page/per_page query parameters
func paginationFromQuery(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}

// dateRangeFromQuery reads start_date/end_date query parameters, falling
// back to the given defaults when absent or malformed.
func dateRangeFromQuery(c *gin.Context, defaultStart, defaultEnd time.Time) (time.Time, time.Time) {
	start, end := defaultStart, defaultEnd
	if s := c.Query("start_date"); s != "" {
		if parsed, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
			start = parsed
		}
	}
	if s := c.Query("end_date"); s != "" {
		if parsed, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
			end = parsed
		}
	}
	return start, end
}
