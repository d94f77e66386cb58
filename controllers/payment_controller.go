package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
	"github.com/v900meme-wq/room-api/utils"
)

type CreatePaymentReq struct {
	ElectStart *int   `json:"electStart" binding:"required,min=0"`
	ElectEnd   *int   `json:"electEnd" binding:"required,min=0"`
	WaterStart *int   `json:"waterStart" binding:"required,min=0"`
	WaterEnd   *int   `json:"waterEnd" binding:"required,min=0"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	Status     string `json:"status" binding:"required,oneof=paid unpaid"`
	Note       string `json:"note"`
	RoomID     uint   `json:"roomId" binding:"required"`
}

type UpdatePaymentReq struct {
	ElectStart *int    `json:"electStart" binding:"omitempty,min=0"`
	ElectEnd   *int    `json:"electEnd" binding:"omitempty,min=0"`
	WaterStart *int    `json:"waterStart" binding:"omitempty,min=0"`
	WaterEnd   *int    `json:"waterEnd" binding:"omitempty,min=0"`
	Month      *int    `json:"month" binding:"omitempty,min=1,max=12"`
	Year       *int    `json:"year" binding:"omitempty,min=2000,max=2100"`
	Status     *string `json:"status" binding:"omitempty,oneof=paid unpaid"`
	Note       *string `json:"note"`
}

// POST /api/payments — snapshot giá từ phòng, tính tổng bằng decimal.
// Unique index (room_id, month, year) là chốt chặn cuối; pre-check chỉ để
// trả lỗi thân thiện trước khi đụng constraint.
func CreatePayment(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req CreatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var room models.Room
	if err := config.DB.Preload("House").First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy phòng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	if room.House == nil || !middleware.CanAccess(u, room.House.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể tạo hóa đơn cho phòng của bạn"})
		return
	}

	var count int64
	config.DB.Model(&models.MonthlyPayment{}).
		Where("room_id = ? AND month = ? AND year = ?", req.RoomID, req.Month, req.Year).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("Hóa đơn phòng %s của tháng %d/%d đã tồn tại", room.RoomName, req.Month, req.Year),
		})
		return
	}

	totalAmount, err := utils.CalculateTotalAmount(
		*req.ElectStart, *req.ElectEnd, *req.WaterStart, *req.WaterEnd,
		room.RoomPrice, room.ElectPrice, room.WaterPrice,
		room.TrashFee, room.WashingMachineFee, room.ElevatorFee, room.ParkingFee,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	payment := models.MonthlyPayment{
		ElectStart:        *req.ElectStart,
		ElectEnd:          *req.ElectEnd,
		WaterStart:        *req.WaterStart,
		WaterEnd:          *req.WaterEnd,
		Month:             req.Month,
		Year:              req.Year,
		RoomPrice:         room.RoomPrice,
		ElectPrice:        room.ElectPrice,
		WaterPrice:        room.WaterPrice,
		TrashFee:          room.TrashFee,
		WashingMachineFee: room.WashingMachineFee,
		ElevatorFee:       room.ElevatorFee,
		ParkingFee:        room.ParkingFee,
		TotalAmount:       totalAmount,
		Status:            req.Status,
		Note:              req.Note,
		RoomID:            req.RoomID,
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		// request song song có thể vượt qua pre-check, constraint DB mới là nguồn sự thật
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"message": fmt.Sprintf("Hóa đơn phòng %s của tháng %d/%d đã tồn tại", room.RoomName, req.Month, req.Year),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được hóa đơn"})
		return
	}

	payment.Room = &room
	recordAudit(c, ActionCreate, EntityPayment, payment.ID, nil, payment)
	c.JSON(http.StatusCreated, gin.H{"data": payment})
}

// GET /api/payments?roomId=&month=&year=&status=
func ListPayments(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	query := config.DB.Preload("Room.House")

	if roomID := c.Query("roomId"); roomID != "" {
		var room models.Room
		if err := config.DB.Preload("House").First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy phòng"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
			return
		}
		if room.House == nil || !middleware.CanAccess(u, room.House.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể xem hóa đơn của bạn"})
			return
		}
		query = query.Where("room_id = ?", room.ID)
	} else if !u.IsAdmin {
		// user thường chỉ thấy hóa đơn của phòng trong nhà mình
		query = query.
			Joins("JOIN room ON room.id = monthly_payment.room_id").
			Joins("JOIN house ON house.id = room.house_id").
			Where("house.user_id = ?", u.ID)
	}

	if month := c.Query("month"); month != "" {
		query = query.Where("month = ?", month)
	}
	if year := c.Query("year"); year != "" {
		query = query.Where("year = ?", year)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("monthly_payment.status = ?", status)
	}

	var payments []models.MonthlyPayment
	if err := query.Order("year desc, month desc, monthly_payment.id desc").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách hóa đơn"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}

// GET /api/payments/room/:roomId/recent — 5 hóa đơn gần nhất + gợi ý chỉ số đầu kỳ sau
func GetRecentPaymentsByRoom(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	roomID, err := strconv.Atoi(c.Param("roomId"))
	if err != nil || roomID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID phòng không hợp lệ"})
		return
	}

	var room models.Room
	if err := config.DB.Preload("House").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy phòng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	if room.House == nil || !middleware.CanAccess(u, room.House.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể xem hóa đơn của bạn"})
		return
	}

	var payments []models.MonthlyPayment
	if err := config.DB.
		Where("room_id = ?", room.ID).
		Order("year desc, month desc").
		Limit(5).
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách hóa đơn"})
		return
	}

	// Chỉ số cuối kỳ gần nhất là gợi ý chỉ số đầu cho kỳ kế tiếp
	var suggestion gin.H
	if len(payments) > 0 {
		latest := payments[0]
		suggestion = gin.H{
			"suggestedElectStart": latest.ElectEnd,
			"suggestedWaterStart": latest.WaterEnd,
			"lastPaymentMonth":    latest.Month,
			"lastPaymentYear":     latest.Year,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"recentPayments": payments,
		"suggestion":     suggestion,
	})
}

// GET /api/payments/:id
func GetPayment(c *gin.Context) {
	p := c.MustGet(middleware.CtxPayment).(models.MonthlyPayment)

	var payment models.MonthlyPayment
	if err := config.DB.Preload("Room.House.User").First(&payment, p.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payment})
}

// PATCH /api/payments/:id — đổi kỳ thì check trùng; đổi chỉ số thì tính lại tổng
// theo snapshot giá đã lưu trong hóa đơn, không lấy giá hiện tại của phòng.
func UpdatePayment(c *gin.Context) {
	payment := c.MustGet(middleware.CtxPayment).(models.MonthlyPayment)
	oldPayment := payment

	var req UpdatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	newMonth := payment.Month
	newYear := payment.Year
	if req.Month != nil {
		newMonth = *req.Month
	}
	if req.Year != nil {
		newYear = *req.Year
	}

	if newMonth != payment.Month || newYear != payment.Year {
		var count int64
		config.DB.Model(&models.MonthlyPayment{}).
			Where("room_id = ? AND month = ? AND year = ? AND id <> ?", payment.RoomID, newMonth, newYear, payment.ID).
			Count(&count)
		if count > 0 {
			roomName := ""
			if payment.Room != nil {
				roomName = payment.Room.RoomName
			}
			c.JSON(http.StatusConflict, gin.H{
				"message": fmt.Sprintf("Hóa đơn phòng %s của tháng %d/%d đã tồn tại", roomName, newMonth, newYear),
			})
			return
		}
	}
	payment.Month = newMonth
	payment.Year = newYear

	readingsChanged := req.ElectStart != nil || req.ElectEnd != nil || req.WaterStart != nil || req.WaterEnd != nil
	if req.ElectStart != nil {
		payment.ElectStart = *req.ElectStart
	}
	if req.ElectEnd != nil {
		payment.ElectEnd = *req.ElectEnd
	}
	if req.WaterStart != nil {
		payment.WaterStart = *req.WaterStart
	}
	if req.WaterEnd != nil {
		payment.WaterEnd = *req.WaterEnd
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}
	if req.Note != nil {
		payment.Note = *req.Note
	}

	if readingsChanged {
		totalAmount, err := utils.CalculateTotalAmount(
			payment.ElectStart, payment.ElectEnd, payment.WaterStart, payment.WaterEnd,
			payment.RoomPrice, payment.ElectPrice, payment.WaterPrice,
			payment.TrashFee, payment.WashingMachineFee, payment.ElevatorFee, payment.ParkingFee,
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		payment.TotalAmount = totalAmount
	}

	room := payment.Room
	payment.Room = nil
	if err := config.DB.Save(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"message": fmt.Sprintf("Hóa đơn của tháng %d/%d đã tồn tại", newMonth, newYear),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được hóa đơn"})
		return
	}

	// Trả về cùng shape với CreatePayment: hóa đơn kèm phòng
	payment.Room = room
	recordAudit(c, ActionUpdate, EntityPayment, payment.ID, oldPayment, payment)
	c.JSON(http.StatusOK, gin.H{"data": payment})
}

// DELETE /api/payments/:id
func DeletePayment(c *gin.Context) {
	payment := c.MustGet(middleware.CtxPayment).(models.MonthlyPayment)

	if err := config.DB.Delete(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xóa được hóa đơn"})
		return
	}

	recordAudit(c, ActionDelete, EntityPayment, payment.ID, payment, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Xóa hóa đơn thành công"})
}
