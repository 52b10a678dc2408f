package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const reportDateLayout = "2006-01-02"

// PaymentMethodSummary is one payment method's share of a report period
type PaymentMethodSummary struct {
	PaymentMethod string  `json:"payment_method"`
	TotalAmount   int64   `json:"-"` // cents
	OrderCount    int     `json:"order_count"`
	Percentage    float64 `json:"percentage"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s PaymentMethodSummary) MarshalJSON() ([]byte, error) {
	type Alias PaymentMethodSummary
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(s),
		TotalAmount: float64(s.TotalAmount) / 100,
	})
}

// CashierSummary is one cashier's share of a report period. Orders are
// grouped by cashier id, the name rides along for display.
type CashierSummary struct {
	CashierID   uuid.UUID `json:"cashier_id"`
	CashierName string    `json:"cashier_name"`
	TotalAmount int64     `json:"-"` // cents
	OrderCount  int       `json:"order_count"`
	Percentage  float64   `json:"percentage"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s CashierSummary) MarshalJSON() ([]byte, error) {
	type Alias CashierSummary
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(s),
		TotalAmount: float64(s.TotalAmount) / 100,
	})
}

// DailySalesReport aggregates one calendar day. Inside weekly and monthly
// reports the per-day rows carry totals and counts only, with the
// breakdown slices left empty.
type DailySalesReport struct {
	Date              time.Time              `json:"-"`
	TotalSales        int64                  `json:"-"` // cents
	OrderCount        int                    `json:"order_count"`
	AverageOrderValue int64                  `json:"-"` // cents, 0 when OrderCount is 0
	PaymentMethods    []PaymentMethodSummary `json:"payment_methods,omitempty"`
	Cashiers          []CashierSummary       `json:"cashiers,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r DailySalesReport) MarshalJSON() ([]byte, error) {
	type Alias DailySalesReport
	return json.Marshal(&struct {
		Alias
		Date              string  `json:"date"`
		TotalSales        float64 `json:"total_sales"`
		AverageOrderValue float64 `json:"average_order_value"`
	}{
		Alias:             Alias(r),
		Date:              r.Date.Format(reportDateLayout),
		TotalSales:        float64(r.TotalSales) / 100,
		AverageOrderValue: float64(r.AverageOrderValue) / 100,
	})
}

// WeeklySalesReport aggregates one Sunday-to-Saturday bucket, re-summed
// from raw orders rather than from the daily rows it embeds.
type WeeklySalesReport struct {
	WeekStart         time.Time              `json:"-"`
	WeekEnd           time.Time              `json:"-"`
	TotalSales        int64                  `json:"-"` // cents
	OrderCount        int                    `json:"order_count"`
	AverageOrderValue int64                  `json:"-"` // cents
	PaymentMethods    []PaymentMethodSummary `json:"payment_methods,omitempty"`
	Cashiers          []CashierSummary       `json:"cashiers,omitempty"`
	DailyBreakdown    []DailySalesReport     `json:"daily_breakdown"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r WeeklySalesReport) MarshalJSON() ([]byte, error) {
	type Alias WeeklySalesReport
	return json.Marshal(&struct {
		Alias
		WeekStart         string  `json:"week_start"`
		WeekEnd           string  `json:"week_end"`
		TotalSales        float64 `json:"total_sales"`
		AverageOrderValue float64 `json:"average_order_value"`
	}{
		Alias:             Alias(r),
		WeekStart:         r.WeekStart.Format(reportDateLayout),
		WeekEnd:           r.WeekEnd.Format(reportDateLayout),
		TotalSales:        float64(r.TotalSales) / 100,
		AverageOrderValue: float64(r.AverageOrderValue) / 100,
	})
}

// MonthlySalesReport aggregates one calendar month, re-summed from raw
// orders.
type MonthlySalesReport struct {
	Year              int                    `json:"year"`
	Month             time.Month             `json:"month"`
	TotalSales        int64                  `json:"-"` // cents
	OrderCount        int                    `json:"order_count"`
	AverageOrderValue int64                  `json:"-"` // cents
	PaymentMethods    []PaymentMethodSummary `json:"payment_methods,omitempty"`
	Cashiers          []CashierSummary       `json:"cashiers,omitempty"`
	DailyBreakdown    []DailySalesReport     `json:"daily_breakdown"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r MonthlySalesReport) MarshalJSON() ([]byte, error) {
	type Alias MonthlySalesReport
	return json.Marshal(&struct {
		Alias
		TotalSales        float64 `json:"total_sales"`
		AverageOrderValue float64 `json:"average_order_value"`
	}{
		Alias:             Alias(r),
		TotalSales:        float64(r.TotalSales) / 100,
		AverageOrderValue: float64(r.AverageOrderValue) / 100,
	})
}
