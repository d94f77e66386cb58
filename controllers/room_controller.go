package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/v900meme-wq/room-api/config"
	"github.com/v900meme-wq/room-api/middleware"
	"github.com/v900meme-wq/room-api/models"
)

// errRoomLimitReached báo hiệu trong transaction rằng chủ phòng đã chạm roomLimit
var errRoomLimitReached = errors.New("đã đạt giới hạn phòng")

// countRoomsOfUser đếm tổng số phòng của một user trên tất cả các nhà.
// Gọi trong transaction đã lock dòng user để check giới hạn không bị race.
func countRoomsOfUser(tx *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Room{}).
		Joins("JOIN house ON house.id = room.house_id").
		Where("house.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

type CreateRoomReq struct {
	RoomName          string          `json:"roomName" binding:"required"`
	Renter            string          `json:"renter" binding:"required"`
	Phone             string          `json:"phone" binding:"required,max=10"`
	Area              decimal.Decimal `json:"area" binding:"required"`
	Status            string          `json:"status" binding:"required,oneof=rented vacant"`
	RoomPrice         decimal.Decimal `json:"roomPrice" binding:"required"`
	ElectPrice        decimal.Decimal `json:"electPrice" binding:"required"`
	WaterPrice        decimal.Decimal `json:"waterPrice" binding:"required"`
	TrashFee          decimal.Decimal `json:"trashFee" binding:"required"`
	WashingMachineFee decimal.Decimal `json:"washingMachineFee" binding:"required"`
	ElevatorFee       decimal.Decimal `json:"elevatorFee" binding:"required"`
	ParkingFee        decimal.Decimal `json:"parkingFee"`
	Deposit           decimal.Decimal `json:"deposit" binding:"required"`
	RentedAt          time.Time       `json:"rentedAt" binding:"required"`
	Note              string          `json:"note"`
	HouseID           uint            `json:"houseId" binding:"required"`
}

type UpdateRoomReq struct {
	RoomName          *string          `json:"roomName"`
	Renter            *string          `json:"renter"`
	Phone             *string          `json:"phone" binding:"omitempty,max=10"`
	Area              *decimal.Decimal `json:"area"`
	Status            *string          `json:"status" binding:"omitempty,oneof=rented vacant"`
	RoomPrice         *decimal.Decimal `json:"roomPrice"`
	ElectPrice        *decimal.Decimal `json:"electPrice"`
	WaterPrice        *decimal.Decimal `json:"waterPrice"`
	TrashFee          *decimal.Decimal `json:"trashFee"`
	WashingMachineFee *decimal.Decimal `json:"washingMachineFee"`
	ElevatorFee       *decimal.Decimal `json:"elevatorFee"`
	ParkingFee        *decimal.Decimal `json:"parkingFee"`
	Deposit           *decimal.Decimal `json:"deposit"`
	RentedAt          *time.Time       `json:"rentedAt"`
	Note              *string          `json:"note"`
	HouseID           *uint            `json:"houseId"`
}

// POST /api/rooms — check giới hạn phòng của chủ nhà trong cùng transaction với insert
func CreateRoom(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req CreateRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var house models.House
	if err := config.DB.First(&house, req.HouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy nhà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	if !middleware.CanAccess(u, house.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể tạo phòng trong nhà của bạn"})
		return
	}

	room := models.Room{
		RoomName:          req.RoomName,
		Renter:            req.Renter,
		Phone:             req.Phone,
		Area:              req.Area,
		Status:            req.Status,
		RoomPrice:         req.RoomPrice,
		ElectPrice:        req.ElectPrice,
		WaterPrice:        req.WaterPrice,
		TrashFee:          req.TrashFee,
		WashingMachineFee: req.WashingMachineFee,
		ElevatorFee:       req.ElevatorFee,
		ParkingFee:        req.ParkingFee,
		Deposit:           req.Deposit,
		RentedAt:          req.RentedAt,
		Note:              req.Note,
		HouseID:           req.HouseID,
	}

	var limit int
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// lock chủ nhà để hai request tạo phòng song song không cùng qua được check
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, house.UserID).Error; err != nil {
			return err
		}

		if owner.RoomLimit != nil {
			roomCount, err := countRoomsOfUser(tx, owner.ID)
			if err != nil {
				return err
			}
			if roomCount >= int64(*owner.RoomLimit) {
				limit = *owner.RoomLimit
				return errRoomLimitReached
			}
		}

		return tx.Create(&room).Error
	})

	if err != nil {
		if errors.Is(err, errRoomLimitReached) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("Bạn đã đạt đến số lượng phòng tối đa (%d)", limit),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được phòng"})
		return
	}

	room.House = &house
	recordAudit(c, ActionCreate, EntityRoom, room.ID, nil, room)
	c.JSON(http.StatusCreated, gin.H{"data": room})
}

// GET /api/rooms?houseId= — không truyền houseId thì trả phòng của mọi nhà user sở hữu
func ListRooms(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	query := config.DB.Preload("House")

	if houseID := c.Query("houseId"); houseID != "" {
		var house models.House
		if err := config.DB.First(&house, "id = ?", houseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy nhà"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
			return
		}
		if !middleware.CanAccess(u, house.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể xem phòng của nhà bạn"})
			return
		}
		query = query.Where("house_id = ?", house.ID)
	} else if !u.IsAdmin {
		query = query.
			Joins("JOIN house ON house.id = room.house_id").
			Where("house.user_id = ?", u.ID)
	}

	var rooms []models.Room
	if err := query.Order("room.id desc").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách phòng"})
		return
	}

	data := make([]gin.H, 0, len(rooms))
	for _, r := range rooms {
		var paymentCount int64
		config.DB.Model(&models.MonthlyPayment{}).Where("room_id = ?", r.ID).Count(&paymentCount)
		data = append(data, gin.H{
			"room":         r,
			"paymentCount": paymentCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// GET /api/rooms/:id — kèm 6 hóa đơn gần nhất
func GetRoom(c *gin.Context) {
	r := c.MustGet(middleware.CtxRoom).(models.Room)

	var room models.Room
	if err := config.DB.
		Preload("House.User").
		Preload("MonthlyPayments", func(db *gorm.DB) *gorm.DB {
			return db.Order("year desc, month desc").Limit(6)
		}).
		First(&room, r.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": room})
}

// PATCH /api/rooms/:id — chuyển phòng sang nhà khác sẽ check lại giới hạn của chủ mới
func UpdateRoom(c *gin.Context) {
	room := c.MustGet(middleware.CtxRoom).(models.Room)
	oldRoom := room

	var req UpdateRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var newHouse *models.House
	if req.HouseID != nil && *req.HouseID != room.HouseID {
		var h models.House
		if err := config.DB.First(&h, *req.HouseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy nhà mới"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
			return
		}

		u := c.MustGet(middleware.CtxUser).(models.User)
		if !middleware.CanAccess(u, h.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Bạn chỉ có thể di chuyển phòng tới nhà khác của bạn"})
			return
		}
		newHouse = &h
	}

	if req.RoomName != nil {
		room.RoomName = *req.RoomName
	}
	if req.Renter != nil {
		room.Renter = *req.Renter
	}
	if req.Phone != nil {
		room.Phone = *req.Phone
	}
	if req.Area != nil {
		room.Area = *req.Area
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.RoomPrice != nil {
		room.RoomPrice = *req.RoomPrice
	}
	if req.ElectPrice != nil {
		room.ElectPrice = *req.ElectPrice
	}
	if req.WaterPrice != nil {
		room.WaterPrice = *req.WaterPrice
	}
	if req.TrashFee != nil {
		room.TrashFee = *req.TrashFee
	}
	if req.WashingMachineFee != nil {
		room.WashingMachineFee = *req.WashingMachineFee
	}
	if req.ElevatorFee != nil {
		room.ElevatorFee = *req.ElevatorFee
	}
	if req.ParkingFee != nil {
		room.ParkingFee = *req.ParkingFee
	}
	if req.Deposit != nil {
		room.Deposit = *req.Deposit
	}
	if req.RentedAt != nil {
		room.RentedAt = *req.RentedAt
	}
	if req.Note != nil {
		room.Note = *req.Note
	}

	if newHouse == nil {
		room.House = nil
		if err := config.DB.Save(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được phòng"})
			return
		}
	} else {
		// Chỉ check giới hạn khi phòng đổi sang chủ khác; cùng chủ thì tổng phòng không đổi
		sameOwner := room.House != nil && room.House.UserID == newHouse.UserID
		room.HouseID = newHouse.ID
		room.House = nil

		var limit int
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			if !sameOwner {
				var newOwner models.User
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&newOwner, newHouse.UserID).Error; err != nil {
					return err
				}
				if newOwner.RoomLimit != nil {
					roomCount, err := countRoomsOfUser(tx, newOwner.ID)
					if err != nil {
						return err
					}
					if roomCount >= int64(*newOwner.RoomLimit) {
						limit = *newOwner.RoomLimit
						return errRoomLimitReached
					}
				}
			}
			return tx.Save(&room).Error
		})

		if err != nil {
			if errors.Is(err, errRoomLimitReached) {
				c.JSON(http.StatusBadRequest, gin.H{
					"message": fmt.Sprintf("Chủ mới đã đạt đến số lượng phòng tối đa (%d)", limit),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được phòng"})
			return
		}
	}

	recordAudit(c, ActionUpdate, EntityRoom, room.ID, oldRoom, room)
	c.JSON(http.StatusOK, gin.H{"data": room})
}

// DELETE /api/rooms/:id — chặn xóa khi phòng còn hóa đơn
func DeleteRoom(c *gin.Context) {
	room := c.MustGet(middleware.CtxRoom).(models.Room)

	// Count lỗi thì không được coi là 0 hóa đơn rồi xóa bừa
	var paymentCount int64
	if err := config.DB.Model(&models.MonthlyPayment{}).Where("room_id = ?", room.ID).Count(&paymentCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}
	if paymentCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Không thể xóa phòng còn hóa đơn. Hãy xóa hết hóa đơn trước."})
		return
	}

	if err := config.DB.Delete(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xóa được phòng"})
		return
	}

	recordAudit(c, ActionDelete, EntityRoom, room.ID, room, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Xóa phòng thành công"})
}
