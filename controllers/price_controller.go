package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/models"
)

type CreatePriceReq struct {
	PriceName         string          `json:"priceName" binding:"required,max=50"`
	RoomPrice         decimal.Decimal `json:"roomPrice" binding:"required"`
	ElectPrice        decimal.Decimal `json:"electPrice" binding:"required"`
	WaterPrice        decimal.Decimal `json:"waterPrice" binding:"required"`
	TrashFee          decimal.Decimal `json:"trashFee" binding:"required"`
	WashingMachineFee decimal.Decimal `json:"washingMachineFee" binding:"required"`
	ElevatorFee       decimal.Decimal `json:"elevatorFee" binding:"required"`
	Deposit           decimal.Decimal `json:"deposit" binding:"required"`
}

type UpdatePriceReq struct {
	PriceName         *string          `json:"priceName" binding:"omitempty,max=50"`
	RoomPrice         *decimal.Decimal `json:"roomPrice"`
	ElectPrice        *decimal.Decimal `json:"electPrice"`
	WaterPrice        *decimal.Decimal `json:"waterPrice"`
	TrashFee          *decimal.Decimal `json:"trashFee"`
	WashingMachineFee *decimal.Decimal `json:"washingMachineFee"`
	ElevatorFee       *decimal.Decimal `json:"elevatorFee"`
	Deposit           *decimal.Decimal `json:"deposit"`
}

func loadPrice(c *gin.Context) (models.Price, bool) {
	var price models.Price
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return price, false
	}
	if err := config.DB.First(&price, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy bảng giá"})
			return price, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return price, false
	}
	return price, true
}

// POST /api/prices (admin)
func CreatePrice(c *gin.Context) {
	var req CreatePriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	price := models.Price{
		PriceName:         req.PriceName,
		RoomPrice:         req.RoomPrice,
		ElectPrice:        req.ElectPrice,
		WaterPrice:        req.WaterPrice,
		TrashFee:          req.TrashFee,
		WashingMachineFee: req.WashingMachineFee,
		ElevatorFee:       req.ElevatorFee,
		Deposit:           req.Deposit,
	}

	if err := config.DB.Create(&price).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được bảng giá"})
		return
	}

	recordAudit(c, ActionCreate, EntityPrice, price.ID, nil, price)
	c.JSON(http.StatusCreated, gin.H{"data": price})
}

// GET /api/prices — mọi user đã đăng nhập đều xem được danh sách bảng giá mẫu
func ListPrices(c *gin.Context) {
	var prices []models.Price
	if err := config.DB.Order("id desc").Find(&prices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách bảng giá"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": prices})
}

// GET /api/prices/:id
func GetPrice(c *gin.Context) {
	price, ok := loadPrice(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": price})
}

// PATCH /api/prices/:id (admin)
func UpdatePrice(c *gin.Context) {
	price, ok := loadPrice(c)
	if !ok {
		return
	}
	oldPrice := price

	var req UpdatePriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	if req.PriceName != nil {
		price.PriceName = *req.PriceName
	}
	if req.RoomPrice != nil {
		price.RoomPrice = *req.RoomPrice
	}
	if req.ElectPrice != nil {
		price.ElectPrice = *req.ElectPrice
	}
	if req.WaterPrice != nil {
		price.WaterPrice = *req.WaterPrice
	}
	if req.TrashFee != nil {
		price.TrashFee = *req.TrashFee
	}
	if req.WashingMachineFee != nil {
		price.WashingMachineFee = *req.WashingMachineFee
	}
	if req.ElevatorFee != nil {
		price.ElevatorFee = *req.ElevatorFee
	}
	if req.Deposit != nil {
		price.Deposit = *req.Deposit
	}

	if err := config.DB.Save(&price).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được bảng giá"})
		return
	}

	recordAudit(c, ActionUpdate, EntityPrice, price.ID, oldPrice, price)
	c.JSON(http.StatusOK, gin.H{"data": price})
}

// DELETE /api/prices/:id (admin) — bảng giá là copy-on-use nên xóa không ảnh hưởng phòng
func DeletePrice(c *gin.Context) {
	price, ok := loadPrice(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&price).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xóa được bảng giá"})
		return
	}

	recordAudit(c, ActionDelete, EntityPrice, price.ID, price, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Xóa bảng giá thành công"})
}
