package models

import "time"

type House struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Address   string    `gorm:"column:address;size:255;not null" json:"address"`
	Note      string    `gorm:"column:note;type:text" json:"note"`
	UserID    uint      `gorm:"column:user_id;not null" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	User  *User  `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Rooms []Room `gorm:"foreignKey:HouseID" json:"rooms,omitempty"`
}

func (House) TableName() string {
	return "house"
}
