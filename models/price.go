package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price là bảng giá mẫu, copy-on-use: không có foreign key tới Room.
type Price struct {
	ID                uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PriceName         string          `gorm:"column:price_name;size:50;not null" json:"priceName"`
	RoomPrice         decimal.Decimal `gorm:"column:room_price;type:decimal(14,2);not null" json:"roomPrice"`
	ElectPrice        decimal.Decimal `gorm:"column:elect_price;type:decimal(14,2);not null" json:"electPrice"`
	WaterPrice        decimal.Decimal `gorm:"column:water_price;type:decimal(14,2);not null" json:"waterPrice"`
	TrashFee          decimal.Decimal `gorm:"column:trash_fee;type:decimal(14,2);not null" json:"trashFee"`
	WashingMachineFee decimal.Decimal `gorm:"column:washing_machine_fee;type:decimal(14,2);not null" json:"washingMachineFee"`
	ElevatorFee       decimal.Decimal `gorm:"column:elevator_fee;type:decimal(14,2);not null" json:"elevatorFee"`
	Deposit           decimal.Decimal `gorm:"column:deposit;type:decimal(14,2);not null" json:"deposit"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Price) TableName() string {
	return "price"
}
