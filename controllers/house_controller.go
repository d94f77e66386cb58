package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
)

type CreateHouseReq struct {
	Address string `json:"address" binding:"required"`
	Note    string `json:"note"`
	UserID  uint   `json:"userId" binding:"required"`
}

type UpdateHouseReq struct {
	Address *string `json:"address"`
	Note    *string `json:"note"`
	UserID  *uint   `json:"userId"`
}

// POST /api/houses
func CreateHouse(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req CreateHouseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	// chủ nhà phải tồn tại
	var owner models.User
	if err := config.DB.First(&owner, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	// user thường chỉ tạo nhà cho chính mình
	if !u.IsAdmin && req.UserID != u.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể tạo nhà cho chính mình"})
		return
	}

	// roomLimit áp cho tổng số phòng, không giới hạn số nhà

	house := models.House{
		Address: req.Address,
		Note:    req.Note,
		UserID:  req.UserID,
	}
	if err := config.DB.Create(&house).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được nhà"})
		return
	}

	house.User = &owner
	recordAudit(c, ActionCreate, EntityHouse, house.ID, nil, house)
	c.JSON(http.StatusCreated, gin.H{"data": house})
}

// GET /api/houses — admin thấy tất cả, user thường chỉ thấy nhà của mình
func ListHouses(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	query := config.DB.Preload("User")
	if !u.IsAdmin {
		query = query.Where("user_id = ?", u.ID)
	}

	var houses []models.House
	if err := query.Order("id desc").Find(&houses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách nhà"})
		return
	}

	data := make([]gin.H, 0, len(houses))
	for _, h := range houses {
		var roomCount int64
		config.DB.Model(&models.Room{}).Where("house_id = ?", h.ID).Count(&roomCount)
		data = append(data, gin.H{
			"id":        h.ID,
			"address":   h.Address,
			"note":      h.Note,
			"userId":    h.UserID,
			"user":      h.User,
			"roomCount": roomCount,
			"createdAt": h.CreatedAt,
			"updatedAt": h.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GET /api/houses/:id
func GetHouse(c *gin.Context) {
	h := c.MustGet(middleware.CtxHouse).(models.House)

	var house models.House
	if err := config.DB.
		Preload("User").
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_name asc")
		}).
		First(&house, h.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": house})
}

// PATCH /api/houses/:id — đổi chủ nhà sẽ kiểm tra lại giới hạn phòng của chủ mới
func UpdateHouse(c *gin.Context) {
	house := c.MustGet(middleware.CtxHouse).(models.House)
	oldHouse := house

	var req UpdateHouseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	if req.Address != nil {
		house.Address = *req.Address
	}
	if req.Note != nil {
		house.Note = *req.Note
	}

	transfer := req.UserID != nil && *req.UserID != house.UserID
	if !transfer {
		if err := config.DB.Save(&house).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được nhà"})
			return
		}
	} else {
		// Chuyển nhà sang chủ mới: đếm phòng + update trong cùng một transaction,
		// lock dòng user của chủ mới để hai request song song không cùng lách qua giới hạn
		var limit int
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			var newOwner models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&newOwner, *req.UserID).Error; err != nil {
				return err
			}

			if newOwner.RoomLimit != nil {
				roomCount, err := countRoomsOfUser(tx, newOwner.ID)
				if err != nil {
					return err
				}
				// phòng của nhà đang chuyển cũng tính vào giới hạn của chủ mới
				var incoming int64
				if err := tx.Model(&models.Room{}).Where("house_id = ?", house.ID).Count(&incoming).Error; err != nil {
					return err
				}
				if roomCount+incoming > int64(*newOwner.RoomLimit) {
					limit = *newOwner.RoomLimit
					return errRoomLimitReached
				}
			}

			house.UserID = *req.UserID
			return tx.Save(&house).Error
		})

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng mới"})
				return
			}
			if errors.Is(err, errRoomLimitReached) {
				c.JSON(http.StatusBadRequest, gin.H{
					"message": fmt.Sprintf("Chủ mới đã đạt đến số lượng phòng tối đa (%d)", limit),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được nhà"})
			return
		}
	}

	recordAudit(c, ActionUpdate, EntityHouse, house.ID, oldHouse, house)
	c.JSON(http.StatusOK, gin.H{"data": house})
}

// DELETE /api/houses/:id — chặn xóa khi nhà còn phòng
func DeleteHouse(c *gin.Context) {
	house := c.MustGet(middleware.CtxHouse).(models.House)

	// Count lỗi thì không được coi là 0 phòng rồi xóa bừa
	var roomCount int64
	if err := config.DB.Model(&models.Room{}).Where("house_id = ?", house.ID).Count(&roomCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}
	if roomCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Không thể xóa nhà còn phòng. Hãy xóa hết phòng trước."})
		return
	}

	if err := config.DB.Delete(&house).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xóa được nhà"})
		return
	}

	recordAudit(c, ActionDelete, EntityHouse, house.ID, house, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Xóa nhà thành công"})
}
