package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyPayment là hóa đơn một kỳ của một phòng. Các trường giá là snapshot
// copy từ Room lúc tạo hóa đơn; đổi giá phòng về sau không ảnh hưởng hóa đơn cũ.
// Unique index (room_id, month, year): mỗi phòng chỉ có một hóa đơn mỗi kỳ,
// ràng buộc ở tầng DB để chặn tạo trùng khi có request song song.
type MonthlyPayment struct {
	ID                uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ElectStart        int             `gorm:"column:elect_start;not null" json:"electStart"`
	ElectEnd          int             `gorm:"column:elect_end;not null" json:"electEnd"`
	WaterStart        int             `gorm:"column:water_start;not null" json:"waterStart"`
	WaterEnd          int             `gorm:"column:water_end;not null" json:"waterEnd"`
	Month             int             `gorm:"column:month;not null;uniqueIndex:idx_payment_room_period" json:"month"`
	Year              int             `gorm:"column:year;not null;uniqueIndex:idx_payment_room_period" json:"year"`
	RoomPrice         decimal.Decimal `gorm:"column:room_price;type:decimal(14,2);not null" json:"roomPrice"`
	ElectPrice        decimal.Decimal `gorm:"column:elect_price;type:decimal(14,2);not null" json:"electPrice"`
	WaterPrice        decimal.Decimal `gorm:"column:water_price;type:decimal(14,2);not null" json:"waterPrice"`
	TrashFee          decimal.Decimal `gorm:"column:trash_fee;type:decimal(14,2);not null" json:"trashFee"`
	WashingMachineFee decimal.Decimal `gorm:"column:washing_machine_fee;type:decimal(14,2);not null" json:"washingMachineFee"`
	ElevatorFee       decimal.Decimal `gorm:"column:elevator_fee;type:decimal(14,2);not null" json:"elevatorFee"`
	ParkingFee        decimal.Decimal `gorm:"column:parking_fee;type:decimal(14,2);default:0" json:"parkingFee"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:decimal(14,2);not null" json:"totalAmount"`
	Status            string          `gorm:"column:status;size:20;default:'unpaid'" json:"status"` // paid | unpaid
	Note              string          `gorm:"column:note;type:text" json:"note"`
	RoomID            uint            `gorm:"column:room_id;not null;uniqueIndex:idx_payment_room_period" json:"roomId"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Room *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (MonthlyPayment) TableName() string {
	return "monthly_payment"
}
