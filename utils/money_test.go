package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCalculateTotalAmount(t *testing.T) {
	// Phòng 2tr, điện 3.500/kWh dùng 50, nước 10.000/m3 dùng 10,
	// rác 50k, máy giặt 30k, thang máy 20k, không gửi xe
	total, err := CalculateTotalAmount(
		100, 150, // điện 100 -> 150
		10, 20, // nước 10 -> 20
		d("2000000"), d("3500"), d("10000"),
		d("50000"), d("30000"), d("20000"), d("0"),
	)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("2375000")), "tổng = %s", total)
}

func TestCalculateTotalAmountZeroUsage(t *testing.T) {
	// Chỉ số không đổi: chỉ tính tiền phòng + phí cố định
	total, err := CalculateTotalAmount(
		200, 200,
		50, 50,
		d("1500000"), d("3500"), d("10000"),
		d("20000"), d("0"), d("0"), d("10000"),
	)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("1530000")), "tổng = %s", total)
}

func TestCalculateTotalAmountDecimalPrices(t *testing.T) {
	// Giá lẻ không bị lệch như khi tính bằng float
	total, err := CalculateTotalAmount(
		0, 3,
		0, 0,
		d("0"), d("0.1"), d("0"),
		d("0"), d("0"), d("0"), d("0"),
	)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("0.3")), "tổng = %s", total)
}

func TestCalculateTotalAmountNegativeElectUsage(t *testing.T) {
	_, err := CalculateTotalAmount(
		150, 100,
		10, 20,
		d("2000000"), d("3500"), d("10000"),
		d("0"), d("0"), d("0"), d("0"),
	)
	assert.ErrorIs(t, err, ErrElectUsageNegative)
}

func TestCalculateTotalAmountNegativeWaterUsage(t *testing.T) {
	_, err := CalculateTotalAmount(
		100, 150,
		20, 10,
		d("2000000"), d("3500"), d("10000"),
		d("0"), d("0"), d("0"), d("0"),
	)
	assert.ErrorIs(t, err, ErrWaterUsageNegative)
}
