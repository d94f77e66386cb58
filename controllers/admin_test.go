package controllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v900meme-wq/room-api/models"
)

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, OccupancyRate(0, 0)) // chưa có phòng, không chia cho 0
	assert.Equal(t, 75.0, OccupancyRate(3, 4))
	assert.Equal(t, 100.0, OccupancyRate(5, 5))
	assert.Equal(t, 33.33, OccupancyRate(1, 3))
}

func TestBuildRevenueStats(t *testing.T) {
	payments := []models.MonthlyPayment{
		{Month: 1, Year: 2026, TotalAmount: decimal.RequireFromString("2000000"), Status: "paid"},
		{Month: 1, Year: 2026, TotalAmount: decimal.RequireFromString("1500000"), Status: "unpaid"},
		{Month: 12, Year: 2025, TotalAmount: decimal.RequireFromString("1800000"), Status: "paid"},
		{Month: 2, Year: 2026, TotalAmount: decimal.RequireFromString("2100000"), Status: "paid"},
	}

	stats := BuildRevenueStats(payments)

	assert.True(t, stats["totalRevenue"].(decimal.Decimal).Equal(decimal.RequireFromString("7400000")))
	assert.True(t, stats["paidRevenue"].(decimal.Decimal).Equal(decimal.RequireFromString("5900000")))
	assert.True(t, stats["unpaidRevenue"].(decimal.Decimal).Equal(decimal.RequireFromString("1500000")))
	assert.Equal(t, 3, stats["totalPaidPayments"])
	assert.Equal(t, 1, stats["totalUnpaidPayments"])

	byMonth := stats["revenueByMonth"].([]MonthRevenue)
	require.Len(t, byMonth, 3)

	// Kỳ mới nhất đứng đầu: 2/2026, 1/2026, 12/2025
	assert.Equal(t, 2, byMonth[0].Month)
	assert.Equal(t, 2026, byMonth[0].Year)
	assert.Equal(t, 1, byMonth[1].Month)
	assert.Equal(t, 2026, byMonth[1].Year)
	assert.Equal(t, 12, byMonth[2].Month)
	assert.Equal(t, 2025, byMonth[2].Year)

	// Tháng 1/2026 gom cả paid lẫn unpaid
	jan := byMonth[1]
	assert.Equal(t, 2, jan.Count)
	assert.True(t, jan.Total.Equal(decimal.RequireFromString("3500000")))
	assert.True(t, jan.Paid.Equal(decimal.RequireFromString("2000000")))
	assert.True(t, jan.Unpaid.Equal(decimal.RequireFromString("1500000")))
}

func TestBuildRevenueStatsEmpty(t *testing.T) {
	stats := BuildRevenueStats(nil)

	assert.True(t, stats["totalRevenue"].(decimal.Decimal).IsZero())
	assert.Equal(t, 0, stats["totalPaidPayments"])
	assert.Equal(t, 0, stats["totalUnpaidPayments"])
	assert.Empty(t, stats["revenueByMonth"])
}
