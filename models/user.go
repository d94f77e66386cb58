package models

import "time"

type User struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;size:50;unique;not null" json:"username"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"` // ẩn khi trả JSON
	Phone     string    `gorm:"column:phone;size:10;not null" json:"phone"`
	RoomLimit *int      `gorm:"column:room_limit" json:"roomLimit"` // null = không giới hạn phòng
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false" json:"isAdmin"`
	Status    bool      `gorm:"column:status;not null;default:true" json:"status"` // false = tài khoản bị khóa
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Houses []House `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "user"
}
