package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
)

// unknownCashier labels orders whose cashier row no longer resolves
const unknownCashier = "Unknown"

// ReportService builds sales reports by re-aggregating raw orders for
// each requested period. Weekly and monthly totals are never derived
// from already-computed daily rows, so sums reconcile exactly in cents.
type ReportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) *ReportService {
	return &ReportService{orderRepo: orderRepo}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek rolls back to the Sunday at or before t
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// aggregate sums one period's orders and builds its payment and cashier
// breakdowns. Percentages are group/total*100, 0 when the period total
// is 0.
func aggregate(orders []entity.Order) (total int64, payments []PaymentMethodSummary, cashiers []CashierSummary) {
	type bucket struct {
		name   string
		amount int64
		count  int
	}
	byMethod := make(map[string]*bucket)
	byCashier := make(map[uuid.UUID]*bucket)

	for _, o := range orders {
		total += o.TotalAmount

		m := o.PaymentMethod.String()
		if byMethod[m] == nil {
			byMethod[m] = &bucket{}
		}
		byMethod[m].amount += o.TotalAmount
		byMethod[m].count++

		name := o.Cashier.Username
		if name == "" {
			name = unknownCashier
		}
		if byCashier[o.CashierID] == nil {
			byCashier[o.CashierID] = &bucket{name: name}
		}
		byCashier[o.CashierID].amount += o.TotalAmount
		byCashier[o.CashierID].count++
	}

	pct := func(amount int64) float64 {
		if total == 0 {
			return 0
		}
		return float64(amount) / float64(total) * 100
	}

	for m, b := range byMethod {
		payments = append(payments, PaymentMethodSummary{
			PaymentMethod: m,
			TotalAmount:   b.amount,
			OrderCount:    b.count,
			Percentage:    pct(b.amount),
		})
	}
	for id, b := range byCashier {
		cashiers = append(cashiers, CashierSummary{
			CashierID:   id,
			CashierName: b.name,
			TotalAmount: b.amount,
			OrderCount:  b.count,
			Percentage:  pct(b.amount),
		})
	}

	sort.Slice(payments, func(i, j int) bool {
		if payments[i].TotalAmount != payments[j].TotalAmount {
			return payments[i].TotalAmount > payments[j].TotalAmount
		}
		return payments[i].PaymentMethod < payments[j].PaymentMethod
	})
	sort.Slice(cashiers, func(i, j int) bool {
		if cashiers[i].TotalAmount != cashiers[j].TotalAmount {
			return cashiers[i].TotalAmount > cashiers[j].TotalAmount
		}
		return cashiers[i].CashierName < cashiers[j].CashierName
	})
	return total, payments, cashiers
}

func average(total int64, count int) int64 {
	if count == 0 {
		return 0
	}
	return total / int64(count)
}

// groupByDate splits orders into per-calendar-day slices, preserving the
// OrderedAt order within each day.
func groupByDate(orders []entity.Order) map[time.Time][]entity.Order {
	byDate := make(map[time.Time][]entity.Order)
	for _, o := range orders {
		d := startOfDay(o.OrderedAt)
		byDate[d] = append(byDate[d], o)
	}
	return byDate
}

func buildDailyReport(date time.Time, orders []entity.Order, withBreakdown bool) DailySalesReport {
	total, payments, cashiers := aggregate(orders)
	r := DailySalesReport{
		Date:              date,
		TotalSales:        total,
		OrderCount:        len(orders),
		AverageOrderValue: average(total, len(orders)),
	}
	if withBreakdown {
		r.PaymentMethods = payments
		r.Cashiers = cashiers
	}
	return r
}

// DailyReports aggregates each calendar day in [start, end] that has at
// least one non-voided order, newest date first. An empty range yields
// an empty slice, not an error.
func (s *ReportService) DailyReports(ctx context.Context, start, end time.Time) ([]DailySalesReport, error) {
	lo := startOfDay(start)
	hi := startOfDay(end).AddDate(0, 0, 1)
	if !lo.Before(hi) {
		return []DailySalesReport{}, nil
	}

	orders, err := s.orderRepo.ListByDateRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}

	reports := make([]DailySalesReport, 0)
	for date, dayOrders := range groupByDate(orders) {
		reports = append(reports, buildDailyReport(date, dayOrders, true))
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Date.After(reports[j].Date)
	})
	return reports, nil
}

// dailyBreakdown builds the per-day sub-rows for a weekly or monthly
// report, totals and counts only, oldest date first.
func dailyBreakdown(orders []entity.Order) []DailySalesReport {
	rows := make([]DailySalesReport, 0)
	for date, dayOrders := range groupByDate(orders) {
		rows = append(rows, buildDailyReport(date, dayOrders, false))
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}

// WeeklyReports aggregates Sunday-to-Saturday buckets covering
// [start, end]. The first bucket starts on the Sunday at or before
// start. Buckets are fetched one at a time; a bucket with no orders is
// omitted, and a failed fetch aborts the whole report.
func (s *ReportService) WeeklyReports(ctx context.Context, start, end time.Time) ([]WeeklySalesReport, error) {
	weekStart := startOfWeek(start)
	rangeEnd := startOfDay(end).AddDate(0, 0, 1)

	reports := make([]WeeklySalesReport, 0)
	for weekStart.Before(rangeEnd) {
		weekEnd := weekStart.AddDate(0, 0, 7)

		orders, err := s.orderRepo.ListByDateRange(ctx, weekStart, weekEnd)
		if err != nil {
			return nil, err
		}

		if len(orders) > 0 {
			total, payments, cashiers := aggregate(orders)
			reports = append(reports, WeeklySalesReport{
				WeekStart:         weekStart,
				WeekEnd:           weekEnd.AddDate(0, 0, -1),
				TotalSales:        total,
				OrderCount:        len(orders),
				AverageOrderValue: average(total, len(orders)),
				PaymentMethods:    payments,
				Cashiers:          cashiers,
				DailyBreakdown:    dailyBreakdown(orders),
			})
		}
		weekStart = weekEnd
	}
	return reports, nil
}

func (s *ReportService) buildMonthlyReport(ctx context.Context, year int, month time.Month) (*MonthlySalesReport, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)

	orders, err := s.orderRepo.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	total, payments, cashiers := aggregate(orders)
	return &MonthlySalesReport{
		Year:              year,
		Month:             month,
		TotalSales:        total,
		OrderCount:        len(orders),
		AverageOrderValue: average(total, len(orders)),
		PaymentMethods:    payments,
		Cashiers:          cashiers,
		DailyBreakdown:    dailyBreakdown(orders),
	}, nil
}

// MonthlyReport aggregates one explicit calendar month. A month with no
// orders still returns a report with zero totals.
func (s *ReportService) MonthlyReport(ctx context.Context, year int, month time.Month) (*MonthlySalesReport, error) {
	if month < time.January || month > time.December {
		return nil, apperror.NewBadRequestError("Invalid month")
	}
	return s.buildMonthlyReport(ctx, year, month)
}

// MonthlyRangeReports aggregates every month from start's month through
// end's month inclusive, one report per month. A start after end yields
// an empty slice.
func (s *ReportService) MonthlyRangeReports(ctx context.Context, start, end time.Time) ([]MonthlySalesReport, error) {
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.Local)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.Local)

	reports := make([]MonthlySalesReport, 0)
	for !cur.After(last) {
		r, err := s.buildMonthlyReport(ctx, cur.Year(), cur.Month())
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
		cur = cur.AddDate(0, 1, 0)
	}
	return reports, nil
}
