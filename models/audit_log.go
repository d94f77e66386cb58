package models

import "time"

// AuditLog chỉ ghi thêm (append-only), ứng dụng không bao giờ sửa hay xóa.
type AuditLog struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"column:user_id;index" json:"userId"`
	Username  string    `gorm:"column:username;size:50;not null" json:"username"`
	Action    string    `gorm:"column:action;size:20;not null" json:"action"` // CREATE | UPDATE | DELETE
	Entity    string    `gorm:"column:entity;size:30;not null" json:"entity"`
	EntityID  *uint     `gorm:"column:entity_id" json:"entityId"`
	OldValue  *string   `gorm:"column:old_value;type:text" json:"oldValue"` // JSON snapshot
	NewValue  *string   `gorm:"column:new_value;type:text" json:"newValue"` // JSON snapshot
	IPAddress string    `gorm:"column:ip_address;size:45" json:"ipAddress"`
	UserAgent string    `gorm:"column:user_agent;size:255" json:"userAgent"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
