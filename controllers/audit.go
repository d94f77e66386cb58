package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/metrics"
	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
	"github.com/v900meme-wq/room-api/utils"
)

const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"

	EntityUser    = "USER"
	EntityHouse   = "HOUSE"
	EntityRoom    = "ROOM"
	EntityPayment = "PAYMENT"
	EntityPrice   = "PRICE"
)

// recordAudit ghi một dòng audit log sau khi mutation đã thành công.
// Chính sách best-effort: ghi lỗi thì log + đếm metric rồi bỏ qua,
// không bao giờ fail request gốc.
func recordAudit(c *gin.Context, action, entity string, entityID uint, oldValue, newValue interface{}) {
	v, ok := c.Get(middleware.CtxUser)
	if !ok {
		return // chỉ ghi cho user đã đăng nhập
	}
	u := v.(models.User)

	entry := models.AuditLog{
		UserID:    &u.ID,
		Username:  u.Username,
		Action:    action,
		Entity:    entity,
		EntityID:  &entityID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	if oldValue != nil {
		if b, err := json.Marshal(oldValue); err == nil {
			s := string(b)
			entry.OldValue = &s
		}
	}
	if newValue != nil {
		if b, err := json.Marshal(newValue); err == nil {
			s := string(b)
			entry.NewValue = &s
		}
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		metrics.AuditWriteErrorsCounter.Inc()
		utils.GetLogger().Error("không ghi được audit log",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Uint("entity_id", entityID),
			zap.String("request_id", c.GetString(middleware.CtxRequestID)),
			zap.Error(err),
		)
	}
}
