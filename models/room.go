package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Giá trong Room là snapshot tại thời điểm thuê, không tham chiếu tới Price template.
type Room struct {
	ID                uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RoomName          string          `gorm:"column:room_name;size:100;not null" json:"roomName"`
	Renter            string          `gorm:"column:renter;size:100;not null" json:"renter"`
	Phone             string          `gorm:"column:phone;size:10;not null" json:"phone"`
	Area              decimal.Decimal `gorm:"column:area;type:decimal(8,2);not null" json:"area"`
	Status            string          `gorm:"column:status;size:20;default:'rented'" json:"status"` // rented | vacant
	RoomPrice         decimal.Decimal `gorm:"column:room_price;type:decimal(14,2);not null" json:"roomPrice"`
	ElectPrice        decimal.Decimal `gorm:"column:elect_price;type:decimal(14,2);not null" json:"electPrice"`
	WaterPrice        decimal.Decimal `gorm:"column:water_price;type:decimal(14,2);not null" json:"waterPrice"`
	TrashFee          decimal.Decimal `gorm:"column:trash_fee;type:decimal(14,2);not null" json:"trashFee"`
	WashingMachineFee decimal.Decimal `gorm:"column:washing_machine_fee;type:decimal(14,2);not null" json:"washingMachineFee"`
	ElevatorFee       decimal.Decimal `gorm:"column:elevator_fee;type:decimal(14,2);not null" json:"elevatorFee"`
	ParkingFee        decimal.Decimal `gorm:"column:parking_fee;type:decimal(14,2);default:0" json:"parkingFee"`
	Deposit           decimal.Decimal `gorm:"column:deposit;type:decimal(14,2);not null" json:"deposit"`
	RentedAt          time.Time       `gorm:"column:rented_at" json:"rentedAt"`
	Note              string          `gorm:"column:note;type:text" json:"note"`
	HouseID           uint            `gorm:"column:house_id;not null" json:"houseId"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	House           *House           `gorm:"foreignKey:HouseID;references:ID" json:"house,omitempty"`
	MonthlyPayments []MonthlyPayment `gorm:"foreignKey:RoomID" json:"monthlyPayments,omitempty"`
}

func (Room) TableName() string {
	return "room"
}
