package utils

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrElectUsageNegative = errors.New("số điện mới phải lớn hơn hoặc bằng số điện cũ")
	ErrWaterUsageNegative = errors.New("số nước mới phải lớn hơn hoặc bằng số nước cũ")
)

// CalculateTotalAmount tính tổng tiền hóa đơn một kỳ:
// tiền phòng + điện tiêu thụ + nước tiêu thụ + các phí cố định.
// Toàn bộ tính bằng decimal, không dùng float để tránh lệch số tiền.
func CalculateTotalAmount(
	electStart, electEnd, waterStart, waterEnd int,
	roomPrice, electPrice, waterPrice, trashFee, washingMachineFee, elevatorFee, parkingFee decimal.Decimal,
) (decimal.Decimal, error) {
	electUsage := electEnd - electStart
	waterUsage := waterEnd - waterStart

	if electUsage < 0 {
		return decimal.Zero, ErrElectUsageNegative
	}
	if waterUsage < 0 {
		return decimal.Zero, ErrWaterUsageNegative
	}

	total := roomPrice.
		Add(electPrice.Mul(decimal.NewFromInt(int64(electUsage)))).
		Add(waterPrice.Mul(decimal.NewFromInt(int64(waterUsage)))).
		Add(trashFee).
		Add(washingMachineFee).
		Add(elevatorFee).
		Add(parkingFee)

	return total, nil
}
