package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/models"
)

// auditLogJSON trả bản ghi audit với old/new value đã parse lại thành JSON
// thay vì chuỗi đã serialize trong DB
func auditLogJSON(a models.AuditLog) gin.H {
	var oldValue, newValue json.RawMessage
	if a.OldValue != nil {
		oldValue = json.RawMessage(*a.OldValue)
	}
	if a.NewValue != nil {
		newValue = json.RawMessage(*a.NewValue)
	}
	return gin.H{
		"id":        a.ID,
		"userId":    a.UserID,
		"username":  a.Username,
		"action":    a.Action,
		"entity":    a.Entity,
		"entityId":  a.EntityID,
		"oldValue":  oldValue,
		"newValue":  newValue,
		"ipAddress": a.IPAddress,
		"userAgent": a.UserAgent,
		"createdAt": a.CreatedAt,
	}
}

// GET /api/audit-logs?userId=&action=&entity=&startDate=&endDate=&limit=&offset= (admin)
func ListAuditLogs(c *gin.Context) {
	query := config.DB.Model(&models.AuditLog{})

	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if startDate := parseDateQuery(c, "startDate"); startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate := parseDateQuery(c, "endDate"); endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	var total int64
	query.Count(&total)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var logs []models.AuditLog
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được audit log"})
		return
	}

	data := make([]gin.H, 0, len(logs))
	for _, a := range logs {
		data = append(data, auditLogJSON(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": total,
	})
}

// GET /api/audit-logs/entity?entity=&entityId= (admin) — lịch sử một bản ghi cụ thể
func ListAuditLogsByEntity(c *gin.Context) {
	entity := c.Query("entity")
	entityID, err := strconv.Atoi(c.Query("entityId"))
	if entity == "" || err != nil || entityID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Thiếu entity hoặc entityId không hợp lệ"})
		return
	}

	var logs []models.AuditLog
	if err := config.DB.
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at desc").
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được audit log"})
		return
	}

	data := make([]gin.H, 0, len(logs))
	for _, a := range logs {
		data = append(data, auditLogJSON(a))
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
