package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestDailyReportPaymentBreakdownReconciles(t *testing.T) {
	repo := newStubOrderRepo()
	committedOrder(repo, day(2024, 1, 15), 3000, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 1, 15), 2000, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 1, 15), 5000, enum.PaymentMethodCard, "bob")

	svc := NewReportService(repo)
	reports, err := svc.DailyReports(context.Background(), day(2024, 1, 15), day(2024, 1, 15))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, int64(10000), report.TotalSales)
	assert.Equal(t, 3, report.OrderCount)
	assert.Equal(t, int64(10000/3), report.AverageOrderValue)

	require.Len(t, report.PaymentMethods, 2)
	var paymentSum int64
	var pctSum float64
	for _, p := range report.PaymentMethods {
		paymentSum += p.TotalAmount
		pctSum += p.Percentage
		assert.InDelta(t, 50.0, p.Percentage, 0.001)
		assert.Equal(t, int64(5000), p.TotalAmount)
	}
	assert.Equal(t, report.TotalSales, paymentSum)
	assert.InDelta(t, 100.0, pctSum, 0.001)

	require.Len(t, report.Cashiers, 2)
	var cashierSum int64
	for _, cs := range report.Cashiers {
		cashierSum += cs.TotalAmount
	}
	assert.Equal(t, report.TotalSales, cashierSum)
}

func TestCashierBreakdownGroupsByCashierID(t *testing.T) {
	repo := newStubOrderRepo()
	committedOrder(repo, day(2024, 2, 1), 1000, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 2, 1), 2000, enum.PaymentMethodCard, "jane")
	committedOrder(repo, day(2024, 2, 1), 3000, enum.PaymentMethodCash, "bob")

	svc := NewReportService(repo)
	reports, err := svc.DailyReports(context.Background(), day(2024, 2, 1), day(2024, 2, 1))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	cashiers := reports[0].Cashiers
	require.Len(t, cashiers, 2)
	byID := make(map[uuid.UUID]CashierSummary)
	for _, cs := range cashiers {
		byID[cs.CashierID] = cs
	}

	jane := byID[testCashierID("jane")]
	assert.Equal(t, "jane", jane.CashierName)
	assert.Equal(t, int64(3000), jane.TotalAmount)
	assert.Equal(t, 2, jane.OrderCount)

	bob := byID[testCashierID("bob")]
	assert.Equal(t, "bob", bob.CashierName)
	assert.Equal(t, int64(3000), bob.TotalAmount)
	assert.Equal(t, 1, bob.OrderCount)
}

func TestDailyReportsNewestFirstAndVoidedExcluded(t *testing.T) {
	repo := newStubOrderRepo()
	committedOrder(repo, day(2024, 1, 14), 1000, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 1, 15), 2000, enum.PaymentMethodCard, "jane")
	voided := committedOrder(repo, day(2024, 1, 15), 9999, enum.PaymentMethodCash, "jane")
	require.NoError(t, repo.Void(context.Background(), voided.ID))

	svc := NewReportService(repo)
	reports, err := svc.DailyReports(context.Background(), day(2024, 1, 14), day(2024, 1, 15))
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.True(t, reports[0].Date.After(reports[1].Date))
	assert.Equal(t, int64(2000), reports[0].TotalSales)
	assert.Equal(t, 1, reports[0].OrderCount)
	assert.Equal(t, int64(1000), reports[1].TotalSales)
}

func TestEmptyRangeYieldsEmptyListNotError(t *testing.T) {
	svc := NewReportService(newStubOrderRepo())

	daily, err := svc.DailyReports(context.Background(), day(2024, 1, 20), day(2024, 1, 10))
	require.NoError(t, err)
	assert.Empty(t, daily)

	weekly, err := svc.WeeklyReports(context.Background(), day(2024, 1, 20), day(2024, 1, 10))
	require.NoError(t, err)
	assert.Empty(t, weekly)

	monthly, err := svc.MonthlyRangeReports(context.Background(), day(2024, 3, 1), day(2024, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, monthly)
}

func TestWeeklyReportsBucketAndReconcile(t *testing.T) {
	repo := newStubOrderRepo()
	// 2024-01-15 is a Monday, 2024-01-17 a Wednesday of the same week;
	// 2024-01-29 falls two weeks later with an empty week between.
	committedOrder(repo, day(2024, 1, 15), 1000, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 1, 17), 2000, enum.PaymentMethodCard, "bob")
	committedOrder(repo, day(2024, 1, 29), 4000, enum.PaymentMethodCash, "jane")

	svc := NewReportService(repo)
	reports, err := svc.WeeklyReports(context.Background(), day(2024, 1, 15), day(2024, 1, 29))
	require.NoError(t, err)

	// The zero-order week in between is omitted
	require.Len(t, reports, 2)

	first := reports[0]
	assert.Equal(t, time.Sunday, first.WeekStart.Weekday())
	assert.Equal(t, day(2024, 1, 14).Format("2006-01-02"), first.WeekStart.Format("2006-01-02"))
	assert.Equal(t, int64(3000), first.TotalSales)
	assert.Equal(t, 2, first.OrderCount)

	// Per-day rows re-sum to the week total
	var daySum int64
	for _, d := range first.DailyBreakdown {
		daySum += d.TotalSales
	}
	assert.Equal(t, first.TotalSales, daySum)
	require.Len(t, first.DailyBreakdown, 2)
	assert.True(t, first.DailyBreakdown[0].Date.Before(first.DailyBreakdown[1].Date))

	second := reports[1]
	assert.Equal(t, int64(4000), second.TotalSales)
	assert.Equal(t, 1, second.OrderCount)
}

func TestMonthlyReportZeroMonthStillReturnsRow(t *testing.T) {
	svc := NewReportService(newStubOrderRepo())

	report, err := svc.MonthlyReport(context.Background(), 2024, time.March)
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, time.March, report.Month)
	assert.Equal(t, int64(0), report.TotalSales)
	assert.Equal(t, 0, report.OrderCount)
	assert.Equal(t, int64(0), report.AverageOrderValue)
	assert.Empty(t, report.DailyBreakdown)
}

func TestMonthlyReportRejectsInvalidMonth(t *testing.T) {
	svc := NewReportService(newStubOrderRepo())

	_, err := svc.MonthlyReport(context.Background(), 2024, time.Month(13))
	assert.Error(t, err)
}

func TestMonthlyRangeReportsIterateMonths(t *testing.T) {
	repo := newStubOrderRepo()
	committedOrder(repo, day(2024, 1, 10), 1000, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 3, 5), 3000, enum.PaymentMethodCard, "jane")

	svc := NewReportService(repo)
	reports, err := svc.MonthlyRangeReports(context.Background(), day(2024, 1, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, int64(1000), reports[0].TotalSales)
	// February has no orders but is still reported, re-queried
	assert.Equal(t, int64(0), reports[1].TotalSales)
	assert.Equal(t, time.February, reports[1].Month)
	assert.Equal(t, int64(3000), reports[2].TotalSales)
}

func TestMonthlyReportReaggregatesFromRawOrders(t *testing.T) {
	repo := newStubOrderRepo()
	// Odd cent amounts would compound if daily rows were summed as floats
	committedOrder(repo, day(2024, 1, 1), 333, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 1, 2), 333, enum.PaymentMethodCash, "jane")
	committedOrder(repo, day(2024, 1, 3), 334, enum.PaymentMethodCash, "jane")

	svc := NewReportService(repo)
	report, err := svc.MonthlyReport(context.Background(), 2024, time.January)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), report.TotalSales)
	var daySum int64
	for _, d := range report.DailyBreakdown {
		daySum += d.TotalSales
	}
	assert.Equal(t, report.TotalSales, daySum)
}
